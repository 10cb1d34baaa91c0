package utils

import (
	"strings"
)

// SplitCSV 拆分逗号分隔的配置项，忽略空项
func SplitCSV(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
