package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeOlderPageEmptySides(t *testing.T) {
	existing := BucketPage([]Message{msgAt("m1", day(1, 8))})

	assert.Equal(t, existing, MergeOlderPage(existing, nil))
	assert.Equal(t, existing, MergeOlderPage(nil, existing))
}

// 片段最新分组与现有最旧分组同日时拼接，不产生重复日期键
func TestMergeOlderPageSpliceSameDay(t *testing.T) {
	existing := BucketPage([]Message{
		msgAt("m5", day(1, 12)),
		msgAt("m4", day(1, 11)),
	})
	fragment := BucketPage([]Message{
		msgAt("m3", day(1, 10)),
		msgAt("m2", day(1, 9)),
		msgAt("m1", day(1, 8)),
	})

	merged := MergeOlderPage(existing, fragment)

	assert.Len(t, merged, 1)
	assert.Equal(t, "2024-05-01", merged[0].DateKey)
	assert.Equal(t, []string{"m1", "m2", "m3", "m4", "m5"}, messageIDs(merged[0]))
}

func TestMergeOlderPageNoOverlap(t *testing.T) {
	existing := BucketPage([]Message{
		msgAt("m6", day(9, 10)),
		msgAt("m5", day(8, 10)),
	})
	fragment := BucketPage([]Message{
		msgAt("m4", day(5, 10)),
		msgAt("m3", day(5, 9)),
		msgAt("m2", day(3, 10)),
	})

	merged := MergeOlderPage(existing, fragment)

	assert.Len(t, merged, 4)
	keys := make([]string, 0, len(merged))
	for _, g := range merged {
		keys = append(keys, g.DateKey)
	}
	assert.Equal(t, []string{"2024-05-03", "2024-05-05", "2024-05-08", "2024-05-09"}, keys)

	// 无日期重叠时不跨组合并消息
	assert.Equal(t, []string{"m2"}, messageIDs(merged[0]))
	assert.Equal(t, []string{"m3", "m4"}, messageIDs(merged[1]))
}

// 分页合并与一次性分桶等价：merge(bucket(A), bucket(B)) == bucket(A ++ B)
func TestMergeOlderPageChunkingEquivalence(t *testing.T) {
	pageA := []Message{
		msgAt("m8", day(9, 20)),
		msgAt("m7", day(9, 8)),
		msgAt("m6", day(7, 23)),
	}
	pageB := []Message{
		msgAt("m5", day(7, 11)),
		msgAt("m4", day(7, 2)),
		msgAt("m3", day(4, 19)),
		msgAt("m2", day(4, 6)),
		msgAt("m1", day(1, 9)),
	}

	chunked := MergeOlderPage(BucketPage(pageA), BucketPage(pageB))
	single := BucketPage(append(append([]Message{}, pageA...), pageB...))

	assert.Equal(t, single, chunked)
}
