package cache

import "strings"

func joinFeatures(features []string) string {
	return strings.Join(features, "\n")
}

func splitFeatures(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
