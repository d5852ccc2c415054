// Package tradingday 交易日相关的日期计算
package tradingday

import "time"

const DateLayout = "2006-01-02"

// MostRecent 返回不晚于now的最近交易日
// 简化规则：周末回退到周五，节假日暂不处理
func MostRecent(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, -2)
	}
	return d
}

// Parse 解析YYYY-MM-DD格式的日期
func Parse(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Format 格式化为YYYY-MM-DD
func Format(d time.Time) string {
	return d.Format(DateLayout)
}
