// Package almanac derives the traditional Chinese almanac labels for a day:
// the sexagenary day name, the zodiac animal of the year, and the lists of
// activities that are favorable (宜) or unfavorable (忌).
//
// Everything here is a pure function of the calendar date. The activity lists
// come from a deterministic hash of the date key, so every machine agrees on
// them without any table lookup.
package almanac

import (
	"slices"
	"time"
)

// Heavenly stems (天干).
var stems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// Earthly branches (地支).
var branches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// Zodiac animals (生肖), indexed by (year-4) mod 12.
var zodiac = [12]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

var favorableCandidates = []string{
	"婚嫁", "出行", "搬家", "开业", "动土", "祭祀", "祈福", "求嗣",
	"纳采", "开光", "安床", "修造", "入宅", "安葬", "破土", "启钻",
	"移柩", "订盟", "纳财", "开市", "立券", "交易", "挂匾", "栽种",
	"斋醮", "出火", "拆卸", "起基", "竖柱", "上梁", "放水", "解除",
	"沐浴", "冠笄", "裁衣", "会友", "进人口", "嫁娶", "经络", "酝酿",
}

var unfavorableCandidates = []string{
	"婚嫁", "出行", "搬家", "开业", "动土", "安葬", "破土", "启钻",
	"入宅", "修造", "栽种", "安床", "开仓", "纳畜", "置产", "造桥",
	"伐木", "作灶", "行丧", "词讼", "探病", "求医", "造庙", "造船",
	"掘井", "开池", "上梁", "竖柱", "盖屋", "祈福", "祭祀", "开市",
	"立券", "交易", "纳财", "出火", "移徙", "分居", "合帐", "冠笄",
}

const (
	favorableSeed   = 42
	unfavorableSeed = 137
	topUpOffset     = 999

	secondsPerDay = 24 * 60 * 60

	minItems = 3
	// spread of the hash-derived list length: 3, 4 or 5 items.
	itemSpread = 3
)

// reference is a 甲子 day: stem 0, branch 0.
var reference = time.Date(2000, time.January, 7, 0, 0, 0, 0, time.UTC)

// Info is the almanac for one day.
type Info struct {
	DayStem     string   `json:"dayStem"`
	DayBranch   string   `json:"dayBranch"`
	DayLabel    string   `json:"combinedDayLabel"`
	ZodiacYear  string   `json:"zodiacYear"`
	Favorable   []string `json:"favorable"`
	Unfavorable []string `json:"unfavorable"`
}

// For returns the almanac for the calendar day of t, read in t's location.
func For(t time.Time) Info {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	key := day.Format("2006-01-02")

	stem, branch := StemBranch(day)
	info := Info{
		DayStem:    stems[stem],
		DayBranch:  branches[branch],
		DayLabel:   stems[stem] + branches[branch],
		ZodiacYear: Zodiac(y),
	}

	favHash := dateHash(key, favorableSeed)
	unfavHash := dateHash(key, unfavorableSeed)

	info.Favorable = pick(favorableCandidates, favHash, minItems+int(favHash%itemSpread))
	unfav := pick(unfavorableCandidates, unfavHash, minItems+int(unfavHash%itemSpread))

	unfav = slices.DeleteFunc(unfav, func(s string) bool {
		return slices.Contains(info.Favorable, s)
	})
	if len(unfav) < minItems {
		pool := make([]string, 0, len(unfavorableCandidates))
		for _, s := range unfavorableCandidates {
			if !slices.Contains(info.Favorable, s) && !slices.Contains(unfav, s) {
				pool = append(pool, s)
			}
		}
		unfav = append(unfav, pick(pool, unfavHash+topUpOffset, minItems-len(unfav))...)
	}
	info.Unfavorable = unfav
	return info
}

// StemBranch returns the stem (0-9) and branch (0-11) indexes of the day of t.
func StemBranch(t time.Time) (stem, branch int) {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// Unix seconds rather than Sub: a Duration overflows ~292 years out.
	days := int((day.Unix() - reference.Unix()) / secondsPerDay)
	return mod(days, len(stems)), mod(days, len(branches))
}

// Zodiac returns the zodiac animal of a year.
func Zodiac(year int) string {
	return zodiac[mod(year-4, len(zodiac))]
}

func mod(n, m int) int {
	return ((n % m) + m) % m
}

// dateHash is a 31-multiplier rolling hash over the runes of s with 32-bit
// wrap-around, returned as its magnitude.
func dateHash(s string, seed int32) int64 {
	h := seed
	for _, c := range s {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// pick shuffles a copy of items with a linear congruential sequence seeded by
// hash and returns the first n.
func pick(items []string, hash int64, n int) []string {
	shuffled := slices.Clone(items)
	h := hash
	for i := len(shuffled) - 1; i > 0; i-- {
		h = (h*1103515245 + 12345) & 0x7fffffff
		j := int(h % int64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
