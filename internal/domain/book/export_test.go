package book

import "time"

// NewServiceWithClock 测试用：注入固定时钟
func NewServiceWithClock(repo Repository, now func() time.Time) Service {
	return &service{repo: repo, now: now}
}
