// Package insights turns recent entries into short deterministic
// narrative strings. Every analysis is an ordered list of
// (predicate, outcome) rules evaluated in declared order, first match
// wins; the thresholds and the order are contractual.
package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/quietcheck/mood-server/internal/dates"
	"github.com/quietcheck/mood-server/internal/models"
)

const (
	maxPatterns = 3

	msgWeekInsufficient = "Not much data yet, but it's a start."
	msgWeekStableCalm   = "The week has been stable and calm."
	msgWeekAnxious      = "This week carried more anxiety than calm."
	msgWeekTired        = "Tiredness dominated this week."
	msgWeekDifficult    = "It has been a difficult week."
	msgWeekGood         = "Overall the week went well."
	msgWeekRatherGood   = "The week went rather well."
	msgWeekRatherHard   = "The week was rather hard."
	msgWeekMixed        = "The week was mixed, with different states."

	msgPatternPlaceholder = "Patterns will emerge over time."
	msgEveningAnxiety     = "Anxiety shows up more often in the evening (after 19:00)."
	msgMorningTiredness   = "Tiredness tends to appear in the morning."
	msgStableWeek         = "A steady week, without sharp swings."

	msgMonthInsufficient = "More data is needed for a monthly picture."
	msgWeekendsBetter    = "Weekends are more settled."
	msgWeekdaysBetter    = "Weekdays feel more comfortable than weekends."
	msgMidweekTiredness  = "Tiredness clusters in the middle of the week."
	msgMoodSwings        = "Noticeable mood swings this month."
	msgSteadyMonth       = "The month has been steady."

	msgDirectionStart     = "Keep checking in; sharper observations will come soon."
	msgDirectionImproving = "The trend is improving: recent days look better."
	msgDirectionRest      = "It may be worth paying attention to rest and recovery."
	msgDirectionPositive  = "Good momentum, keep observing."
	msgDirectionSupport   = "If you feel you need support, that is okay."
	msgDirectionNeutral   = "Things are broadly stable. Keep observing."
)

func meanScore(entries []models.Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += models.MoodScores[e.Mood]
	}
	return sum / float64(len(entries))
}

func countMoods(entries []models.Entry) map[models.Mood]int {
	counts := make(map[models.Mood]int, len(models.Moods))
	for _, e := range entries {
		counts[e.Mood]++
	}
	return counts
}

// ============== Weekly dynamic ==============

type weekFacts struct {
	counts map[models.Mood]int
	total  int
	neg    int // heavy + anxious + tired
	pos    int // wonderful + calm
	avg    float64
}

type dynamicRule struct {
	when func(f weekFacts) bool
	text func(f weekFacts) string
}

// Evaluated in order, first match wins. The final rule always fires.
var weeklyDynamicRules = []dynamicRule{
	{
		when: func(f weekFacts) bool { return f.neg == 0 && f.pos > 0 },
		text: func(weekFacts) string { return msgWeekStableCalm },
	},
	{
		when: func(f weekFacts) bool { return f.neg > f.pos && float64(f.neg) > float64(f.total)*0.5 },
		text: func(f weekFacts) string {
			anx, hvy, trd := f.counts[models.MoodAnxious], f.counts[models.MoodHeavy], f.counts[models.MoodTired]
			if anx >= hvy && anx >= trd {
				return msgWeekAnxious
			}
			if trd >= hvy {
				return msgWeekTired
			}
			return msgWeekDifficult
		},
	},
	{
		when: func(f weekFacts) bool { return f.pos > f.neg },
		text: func(weekFacts) string { return msgWeekGood },
	},
	{
		when: func(f weekFacts) bool { return f.avg > 0.5 },
		text: func(weekFacts) string { return msgWeekRatherGood },
	},
	{
		when: func(f weekFacts) bool { return f.avg < -0.5 },
		text: func(weekFacts) string { return msgWeekRatherHard },
	},
	{
		when: func(weekFacts) bool { return true },
		text: func(weekFacts) string { return msgWeekMixed },
	},
}

// WeeklyDynamic summarizes the last-7-days window in one sentence.
// Fewer than 2 entries yields the insufficient-data message.
func WeeklyDynamic(week []models.Entry) string {
	if len(week) < 2 {
		return msgWeekInsufficient
	}

	counts := countMoods(week)
	f := weekFacts{
		counts: counts,
		total:  len(week),
		neg:    counts[models.MoodHeavy] + counts[models.MoodAnxious] + counts[models.MoodTired],
		pos:    counts[models.MoodWonderful] + counts[models.MoodCalm],
		avg:    meanScore(week),
	}

	for _, r := range weeklyDynamicRules {
		if r.when(f) {
			return r.text(f)
		}
	}
	return msgWeekMixed
}

// ============== Weekly patterns ==============

type weekPatternFacts struct {
	entries        []models.Entry
	eveningAnxious int
	morningTired   int
	worstDay       time.Weekday
	worstDayNeg    int
	distinctMoods  int
}

// patternRule contributes one fact to a pattern list. Rules marked
// capped only fire while fewer than maxPatterns facts are collected;
// the list is truncated to maxPatterns regardless.
type patternRule struct {
	capped bool
	when   func(f *weekPatternFacts) bool
	text   func(f *weekPatternFacts) string
}

var weeklyPatternRules = []patternRule{
	{
		when: func(f *weekPatternFacts) bool { return f.eveningAnxious >= 2 },
		text: func(*weekPatternFacts) string { return msgEveningAnxiety },
	},
	{
		when: func(f *weekPatternFacts) bool { return f.morningTired >= 2 },
		text: func(*weekPatternFacts) string { return msgMorningTiredness },
	},
	{
		capped: true,
		when:   func(f *weekPatternFacts) bool { return f.worstDayNeg >= 2 },
		text: func(f *weekPatternFacts) string {
			return fmt.Sprintf("%s is a tough day.", f.worstDay)
		},
	},
	{
		capped: true,
		when:   func(f *weekPatternFacts) bool { return f.distinctMoods <= 2 && len(f.entries) >= 4 },
		text:   func(*weekPatternFacts) string { return msgStableWeek },
	},
}

// entryHour is the local wall-clock hour the entry was created.
func entryHour(e models.Entry) int {
	return time.UnixMilli(e.CreatedAt).Hour()
}

// WeeklyPatterns reports up to three pattern facts over the last-7-days
// window, in fixed priority order. Fewer than 3 entries, or no firing
// rule, yields the single placeholder.
func WeeklyPatterns(week []models.Entry) []string {
	if len(week) < 3 {
		return []string{msgPatternPlaceholder}
	}

	f := &weekPatternFacts{entries: week}

	distinct := make(map[models.Mood]bool)
	negByDay := make(map[time.Weekday]int)
	for _, e := range week {
		distinct[e.Mood] = true

		h := entryHour(e)
		if e.Mood == models.MoodAnxious && (h >= 19 || h < 4) {
			f.eveningAnxious++
		}
		if e.Mood == models.MoodTired && h >= 6 && h < 12 {
			f.morningTired++
		}

		if e.Mood == models.MoodHeavy || e.Mood == models.MoodAnxious {
			if dow, ok := dates.Weekday(e.Date); ok {
				negByDay[dow]++
			}
		}
	}
	f.distinctMoods = len(distinct)

	// Worst day: strictly greater count wins, Sunday-first scan order
	// breaks ties.
	for dow := time.Sunday; dow <= time.Saturday; dow++ {
		if negByDay[dow] > f.worstDayNeg && negByDay[dow] >= 2 {
			f.worstDayNeg = negByDay[dow]
			f.worstDay = dow
		}
	}

	var results []string
	for _, r := range weeklyPatternRules {
		if r.capped && len(results) >= maxPatterns {
			continue
		}
		if r.when(f) {
			results = append(results, r.text(f))
		}
	}
	if len(results) == 0 {
		return []string{msgPatternPlaceholder}
	}
	if len(results) > maxPatterns {
		results = results[:maxPatterns]
	}
	return results
}

// ============== Monthly patterns ==============

type monthFacts struct {
	topMood    models.Mood
	topPct     int
	weekendAvg float64
	weekdayAvg float64
	haveSplit  bool // weekend >=3 and weekday >=5 entries
	tiredTotal int
	tiredMid   int // Tue..Thu
	variance   float64
	haveSpread bool // >=8 entries
}

// MonthlyPatterns reports up to three facts over the last-30-days
// window. The modal mood with its share is always first; weekday vs
// weekend comparison, midweek tiredness and score variance follow in
// declared order. Fewer than 5 entries yields the placeholder.
func MonthlyPatterns(month []models.Entry) []string {
	if len(month) < 5 {
		return []string{msgMonthInsufficient}
	}

	f := buildMonthFacts(month)

	results := []string{
		fmt.Sprintf("This month %s prevails (%d%%).", models.MoodLabels[f.topMood], f.topPct),
	}

	if f.haveSplit {
		if f.weekendAvg > f.weekdayAvg+0.5 {
			results = append(results, msgWeekendsBetter)
		} else if f.weekdayAvg > f.weekendAvg+0.5 {
			results = append(results, msgWeekdaysBetter)
		}
	}

	if f.tiredTotal >= 4 && float64(f.tiredMid) > float64(f.tiredTotal)*0.5 && len(results) < maxPatterns {
		results = append(results, msgMidweekTiredness)
	}

	if f.haveSpread {
		if f.variance > 2 && len(results) < maxPatterns {
			results = append(results, msgMoodSwings)
		} else if f.variance < 0.5 && len(results) < maxPatterns {
			results = append(results, msgSteadyMonth)
		}
	}

	if len(results) > maxPatterns {
		results = results[:maxPatterns]
	}
	return results
}

func buildMonthFacts(month []models.Entry) monthFacts {
	var f monthFacts

	counts := countMoods(month)
	topCount := 0
	f.topMood = models.MoodNormal
	for _, m := range models.Moods {
		if counts[m] > topCount {
			topCount = counts[m]
			f.topMood = m
		}
	}
	f.topPct = int(math.Round(float64(topCount) / float64(len(month)) * 100))

	var weekend, weekday []models.Entry
	for _, e := range month {
		dow, ok := dates.Weekday(e.Date)
		if !ok {
			continue
		}
		if dow == time.Saturday || dow == time.Sunday {
			weekend = append(weekend, e)
		} else {
			weekday = append(weekday, e)
		}
		if e.Mood == models.MoodTired {
			f.tiredTotal++
			if dow >= time.Tuesday && dow <= time.Thursday {
				f.tiredMid++
			}
		}
	}
	if len(weekend) >= 3 && len(weekday) >= 5 {
		f.haveSplit = true
		f.weekendAvg = meanScore(weekend)
		f.weekdayAvg = meanScore(weekday)
	}

	if len(month) >= 8 {
		f.haveSpread = true
		avg := meanScore(month)
		var sum float64
		for _, e := range month {
			d := models.MoodScores[e.Mood] - avg
			sum += d * d
		}
		f.variance = sum / float64(len(month))
	}

	return f
}

// ============== Directional trend ==============

// Direction compares the newer half of the most recent 14 entries
// (by creation time, not calendar window) against the older half.
// Fewer than 5 lifetime entries yields the generic encouragement.
func Direction(all []models.Entry) string {
	if len(all) < 5 {
		return msgDirectionStart
	}

	recent := make([]models.Entry, len(all))
	copy(recent, all)
	sort.Slice(recent, func(i, j int) bool { return recent[i].CreatedAt > recent[j].CreatedAt })
	if len(recent) > 14 {
		recent = recent[:14]
	}

	half := len(recent) / 2
	newer := recent[:half]
	older := recent[half:]
	newerAvg := meanScore(newer)
	olderAvg := meanScore(older)

	switch {
	case newerAvg > olderAvg+0.5:
		return msgDirectionImproving
	case newerAvg < olderAvg-0.5:
		return msgDirectionRest
	}

	avg := meanScore(recent)
	switch {
	case avg > 0.8:
		return msgDirectionPositive
	case avg < -0.8:
		return msgDirectionSupport
	}
	return msgDirectionNeutral
}

// Narratives runs the weekly and monthly pattern analyses over an
// arbitrary caller window (a report range, not necessarily 7/30 days)
// and keeps only real observations: insufficient-data placeholders are
// dropped, so the result may be empty. Capped at maxPatterns.
func Narratives(window []models.Entry) []string {
	var out []string
	for _, s := range WeeklyPatterns(window) {
		if s != msgPatternPlaceholder {
			out = append(out, s)
		}
	}
	for _, s := range MonthlyPatterns(window) {
		if s != msgMonthInsufficient && len(out) < maxPatterns {
			out = append(out, s)
		}
	}
	if len(out) > maxPatterns {
		out = out[:maxPatterns]
	}
	return out
}

// All computes every insight block from a full entry snapshot.
func All(entries []models.Entry, now time.Time) models.InsightsResponse {
	week := dates.LastNDays(entries, now, 7)
	month := dates.LastNDays(entries, now, 30)
	return models.InsightsResponse{
		WeekDynamic:   WeeklyDynamic(week),
		WeekPatterns:  WeeklyPatterns(week),
		MonthPatterns: MonthlyPatterns(month),
		Direction:     Direction(entries),
	}
}
