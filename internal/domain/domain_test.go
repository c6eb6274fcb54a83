package domain

import (
	"encoding/json"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueGrowth(t *testing.T) {
	t.Run("Should be zero when previous month is zero", func(t *testing.T) {
		got := RevenueGrowth(decimal.NewFromInt(500), decimal.Zero)
		assert.True(t, got.IsZero())
	})
	t.Run("Should compute percent growth rounded to two decimals", func(t *testing.T) {
		got := RevenueGrowth(decimal.NewFromInt(1100), decimal.NewFromInt(1000))
		assert.Equal(t, "10.00", got.StringFixed(2))
		assert.True(t, got.Equal(decimal.NewFromInt(10)))
	})
	t.Run("Should round fractional growth", func(t *testing.T) {
		got := RevenueGrowth(decimal.NewFromInt(200), decimal.NewFromInt(300))
		assert.Equal(t, "-33.33", got.String())
	})
}

func TestTaskPriorityRank(t *testing.T) {
	assert.Equal(t, 1, TaskPriorityUrgent.Rank())
	assert.Equal(t, 2, TaskPriorityHigh.Rank())
	assert.Equal(t, 3, TaskPriorityMedium.Rank())
	assert.Equal(t, 4, TaskPriorityLow.Rank())
	assert.Equal(t, 4, TaskPriority("someday").Rank())
}

func TestLessUrgent(t *testing.T) {
	day := func(n int) *time.Time {
		d := time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
		return &d
	}
	t.Run("Should put urgent first regardless of due date", func(t *testing.T) {
		tasks := []Task{
			{ID: 1, Priority: TaskPriorityMedium, DueDate: day(2)},
			{ID: 2, Priority: TaskPriorityUrgent, DueDate: day(1)},
		}
		sort.SliceStable(tasks, func(i, j int) bool { return LessUrgent(tasks[i], tasks[j]) })
		assert.Equal(t, int64(2), tasks[0].ID)

		tasks = []Task{
			{ID: 1, Priority: TaskPriorityMedium, DueDate: day(1)},
			{ID: 2, Priority: TaskPriorityUrgent, DueDate: day(2)},
		}
		sort.SliceStable(tasks, func(i, j int) bool { return LessUrgent(tasks[i], tasks[j]) })
		assert.Equal(t, int64(2), tasks[0].ID)
	})
	t.Run("Should order equal priority by due date with undated last", func(t *testing.T) {
		tasks := []Task{
			{ID: 1, Priority: TaskPriorityHigh},
			{ID: 2, Priority: TaskPriorityHigh, DueDate: day(5)},
			{ID: 3, Priority: TaskPriorityHigh, DueDate: day(3)},
		}
		sort.SliceStable(tasks, func(i, j int) bool { return LessUrgent(tasks[i], tasks[j]) })
		assert.Equal(t, []int64{3, 2, 1}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	})
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(Page{Page: 2, Limit: 20}, 45)
	assert.Equal(t, int64(3), info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	last := NewPageInfo(Page{Page: 3, Limit: 20}, 45)
	assert.False(t, last.HasNext)

	empty := NewPageInfo(Page{Page: 1, Limit: 20}, 0)
	assert.Equal(t, int64(0), empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
	assert.Equal(t, uint64(20), Page{Page: 2, Limit: 20}.Offset())
}

func TestPage_Offset(t *testing.T) {
	t.Run("Should not overflow for the largest page", func(t *testing.T) {
		assert.Equal(t, uint64(MaxPage-1)*MaxLimit, Page{Page: MaxPage, Limit: MaxLimit}.Offset())
	})
	t.Run("Should clamp pages beyond the bound", func(t *testing.T) {
		huge := Page{Page: math.MaxInt64 / 50, Limit: 100}
		assert.Equal(t, uint64(MaxPage-1)*MaxLimit, huge.Offset())
	})
	t.Run("Should not report a next page past the last one", func(t *testing.T) {
		info := NewPageInfo(Page{Page: math.MaxInt64 / 50, Limit: 100}, 5)
		assert.False(t, info.HasNext)
		assert.Equal(t, int64(1), info.TotalPages)
	})
}

func TestDate(t *testing.T) {
	t.Run("Should round trip plain dates through JSON", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2019-04-30"`), &d))
		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2019-04-30"`, string(out))
	})
	t.Run("Should accept RFC3339 timestamps", func(t *testing.T) {
		d, err := ParseDate("2019-04-30T15:04:05Z")
		require.NoError(t, err)
		assert.Equal(t, "2019-04-30", d.String())
	})
	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := ParseDate("30/04/2019")
		assert.Error(t, err)
	})
	t.Run("Should scan database times", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2020, 2, 3, 10, 0, 0, 0, time.UTC)))
		assert.Equal(t, "2020-02-03", d.String())
	})
}
