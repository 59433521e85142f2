package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ParseJSON 解析 JSON 字符串，結尾不得有多餘資料
func ParseJSON(data string, v interface{}) error {
	dec := json.NewDecoder(strings.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

// ToJSON 將結構體轉換為 JSON 字符串
func ToJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseJSONList 解析 JSON 陣列欄位，空字串與 null 視為空陣列
func ParseJSONList[T any](data string) ([]T, error) {
	data = strings.TrimSpace(data)
	if data == "" || data == "null" {
		return []T{}, nil
	}
	var list []T
	if err := ParseJSON(data, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}
