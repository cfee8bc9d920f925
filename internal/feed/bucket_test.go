package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func msgAt(id string, at time.Time) Message {
	return Message{ID: id, MemberID: 1, MemberName: "raqtpie", Body: "hello " + id, CreatedAt: at, Status: StatusSent}
}

func day(d, hour int) time.Time {
	return time.Date(2024, 5, d, hour, 0, 0, 0, time.Local)
}

func TestBucketPageEmpty(t *testing.T) {
	assert.Empty(t, BucketPage(nil))
	assert.Empty(t, BucketPage([]Message{}))
}

func TestBucketPageGroupsByDay(t *testing.T) {
	// 服务端页面按时间降序
	page := []Message{
		msgAt("m5", day(3, 10)),
		msgAt("m4", day(3, 9)),
		msgAt("m3", day(2, 18)),
		msgAt("m2", day(1, 12)),
		msgAt("m1", day(1, 8)),
	}

	groups := BucketPage(page)

	assert.Len(t, groups, 3)
	assert.Equal(t, "2024-05-01", groups[0].DateKey)
	assert.Equal(t, "2024-05-02", groups[1].DateKey)
	assert.Equal(t, "2024-05-03", groups[2].DateKey)

	// 组内升序
	assert.Equal(t, []string{"m1", "m2"}, messageIDs(groups[0]))
	assert.Equal(t, []string{"m3"}, messageIDs(groups[1]))
	assert.Equal(t, []string{"m4", "m5"}, messageIDs(groups[2]))
}

// 展平所有分组再整体反转应当还原输入页面
func TestBucketPageFlattenRoundTrip(t *testing.T) {
	page := []Message{
		msgAt("m6", day(9, 23)),
		msgAt("m5", day(9, 1)),
		msgAt("m4", day(7, 15)),
		msgAt("m3", day(7, 14)),
		msgAt("m2", day(7, 2)),
		msgAt("m1", day(2, 5)),
	}

	var flat []Message
	for _, g := range BucketPage(page) {
		flat = append(flat, g.Messages...)
	}
	for i, j := 0, len(flat)-1; i < j; i, j = i+1, j-1 {
		flat[i], flat[j] = flat[j], flat[i]
	}

	assert.Equal(t, page, flat)
}

func TestBucketPageSingleDay(t *testing.T) {
	page := []Message{
		msgAt("m3", day(1, 20)),
		msgAt("m2", day(1, 10)),
		msgAt("m1", day(1, 1)),
	}

	groups := BucketPage(page)

	assert.Len(t, groups, 1)
	assert.Equal(t, []string{"m1", "m2", "m3"}, messageIDs(groups[0]))
}

func messageIDs(g Group) []string {
	ids := make([]string, 0, len(g.Messages))
	for _, m := range g.Messages {
		ids = append(ids, m.ID)
	}
	return ids
}
