package feed

// MergeOlderPage 将向上翻页得到的分组片段合并到现有列表前部
// fragment 由 BucketPage 产出，且整体严格早于 existing 中最旧的消息。
// 当 fragment 的最新分组与 existing 的最旧分组同属一天时拼接为一组，
// 片段消息（更早）在前；否则整体前插。合并后日期键保持严格单调。
func MergeOlderPage(existing, fragment GroupedList) GroupedList {
	if len(fragment) == 0 {
		return existing
	}
	if len(existing) == 0 {
		return fragment
	}

	fragNewest := fragment[len(fragment)-1]
	currOldest := existing[0]

	if fragNewest.DateKey == currOldest.DateKey {
		spliced := Group{
			DateKey:  currOldest.DateKey,
			Messages: make([]Message, 0, len(fragNewest.Messages)+len(currOldest.Messages)),
		}
		spliced.Messages = append(spliced.Messages, fragNewest.Messages...)
		spliced.Messages = append(spliced.Messages, currOldest.Messages...)

		out := make(GroupedList, 0, len(fragment)+len(existing)-1)
		out = append(out, fragment[:len(fragment)-1]...)
		out = append(out, spliced)
		out = append(out, existing[1:]...)
		return out
	}

	out := make(GroupedList, 0, len(fragment)+len(existing))
	out = append(out, fragment...)
	out = append(out, existing...)
	return out
}
