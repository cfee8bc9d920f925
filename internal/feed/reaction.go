package feed

// ToggleReaction 切换 actorID 对某表情值的标记，返回新的计数列表
// 同参调用两次互为逆操作：无该表情则追加 (value, [actorID])；
// 已标记则移除，成员列表清空时整项删除；未标记则尾部追加，不改变既有顺序。
func ToggleReaction(tally []Reaction, value string, actorID uint64) []Reaction {
	for i := range tally {
		if tally[i].Value != value {
			continue
		}

		for j, id := range tally[i].MemberIDs {
			if id != actorID {
				continue
			}
			ids := append(tally[i].MemberIDs[:j:j], tally[i].MemberIDs[j+1:]...)
			if len(ids) == 0 {
				return append(tally[:i:i], tally[i+1:]...)
			}
			tally[i].MemberIDs = ids
			return tally
		}

		tally[i].MemberIDs = append(tally[i].MemberIDs, actorID)
		return tally
	}

	return append(tally, Reaction{Value: value, MemberIDs: []uint64{actorID}})
}
