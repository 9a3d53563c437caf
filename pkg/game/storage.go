package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "bubblehunter"

// OpenStorage 打开 gdata 存储
//
// 失败时返回 nil，调用方进入降级模式（最高分为 0，仅内存设置），不会中断启动
func OpenStorage(appName string) *gdata.Manager {
	if err := prepareStorageDir(); err != nil {
		log.Printf("[Storage] Warning: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Storage] Warning: gdata unavailable: %v (scores will not persist)", err)
		return nil
	}
	return manager
}
