package feed

// Group 同一日历日期下的消息分组，组内按时间升序排列
type Group struct {
	DateKey  string    `json:"date_key"`
	Messages []Message `json:"messages"`
}

// GroupedList 按日期分组的消息列表
// 下标 0 为已加载的最旧分组，末尾为最新分组，新消息始终追加在视觉底部
type GroupedList []Group

// BucketPage 将服务端返回的一页消息（按时间降序）转换为分组列表
// 构建顺序是新→旧，因此组内采用头插，组序最终整体反转，使最旧分组排在最前
func BucketPage(page []Message) GroupedList {
	if len(page) == 0 {
		return nil
	}

	index := make(map[string]int, 4)
	groups := make([]Group, 0, 4) // 首次出现顺序：最新的日期在前

	for _, msg := range page {
		key := msg.DateKey()
		if i, ok := index[key]; ok {
			groups[i].Messages = append([]Message{msg}, groups[i].Messages...)
		} else {
			index[key] = len(groups)
			groups = append(groups, Group{DateKey: key, Messages: []Message{msg}})
		}
	}

	out := make(GroupedList, len(groups))
	for i := range groups {
		out[len(groups)-1-i] = groups[i]
	}
	return out
}

// findGroup 按日期键定位分组，未找到返回 -1
func (l GroupedList) findGroup(dateKey string) int {
	for i := range l {
		if l[i].DateKey == dateKey {
			return i
		}
	}
	return -1
}

// findMessage 在指定日期分组内按 ID 定位消息
func (l GroupedList) findMessage(dateKey, id string) *Message {
	gi := l.findGroup(dateKey)
	if gi < 0 {
		return nil
	}
	for i := range l[gi].Messages {
		if l[gi].Messages[i].ID == id {
			return &l[gi].Messages[i]
		}
	}
	return nil
}
