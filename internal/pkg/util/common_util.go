package util

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"mime/multipart"
	"net/http"
)

const joinCodeAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"

// RandomJoinCode 生成工作区加入码，字符集去掉了易混淆字符
func RandomJoinCode(length int) string {
	b := make([]byte, length)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = joinCodeAlphabet[int(b[i])%len(joinCodeAlphabet)]
	}
	return string(b)
}

// ConversationMemberKey 规范化私聊双方的成员键，小 ID 在前
func ConversationMemberKey(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// GetSafeContentType 基于文件头嗅探真实 MIME 类型，不信任客户端声明
func GetSafeContentType(file multipart.File) (string, error) {
	reader := bufio.NewReader(file)
	head, err := reader.Peek(512)
	if err != nil && len(head) == 0 {
		return "", err
	}
	if _, err = file.Seek(0, 0); err != nil {
		return "", err
	}
	return http.DetectContentType(head), nil
}
