package emulator

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// setINI sets keys in section of the ini file at path, keeping
// every other line intact. An empty section addresses the keys
// before the first section header. The file is created if missing.
func setINI(path, section string, values map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var (
		out     []string
		current string
		pending = make(map[string]string, len(values))
		crlf    = bytes.Contains(data, []byte("\r\n"))
	)
	for k, v := range values {
		pending[k] = v
	}
	flush := func() {
		keys := make([]string, 0, len(pending))
		for k := range pending {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, k+"="+pending[k])
		}
		pending = map[string]string{}
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			if strings.EqualFold(current, section) {
				flush()
			}
			current = trimmed[1 : len(trimmed)-1]
			out = append(out, line)
			continue
		}
		if strings.EqualFold(current, section) {
			if k, _, ok := strings.Cut(trimmed, "="); ok {
				k = strings.TrimSpace(k)
				if v, ok := lookupFold(pending, k); ok {
					out = append(out, k+"="+v)
					deleteFold(pending, k)
					continue
				}
			}
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(pending) > 0 {
		if !strings.EqualFold(current, section) {
			out = append(out, "["+section+"]")
		}
		flush()
	}

	nl := "\n"
	if crlf {
		nl = "\r\n"
	}
	return os.WriteFile(path, []byte(strings.Join(out, nl)+nl), 0o644)
}

func lookupFold(m map[string]string, key string) (string, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

func deleteFold(m map[string]string, key string) {
	for k := range m {
		if strings.EqualFold(k, key) {
			delete(m, k)
		}
	}
}
