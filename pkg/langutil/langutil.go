package langutil

import (
	"regexp"
	"sync"

	"github.com/tsutils/tsutils/pkg/errors"
)

var regexCache sync.Map

// ReGroup extracts a capture group from txt. Group 0 is the whole match;
// group defaults are the caller's concern, pass 1 for the first capture.
// ReGroup 从 txt 中提取捕获组。第 0 组是整个匹配；请为第一个捕获组传入 1。
func ReGroup(txt, pattern string, group int, caseInsensitive bool) (string, error) {
	key := pattern
	if caseInsensitive {
		key = "(?i)" + pattern
	}
	re, err := compile(key)
	if err != nil {
		return "", err
	}
	matches := re.FindStringSubmatch(txt)
	if matches == nil || group < 0 || group >= len(matches) {
		return "", errors.ErrNoMatch
	}
	return matches[group], nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}
