package transport

import "net/url"

// redactURL replaces every query value with xxx
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	q := u.Query()
	for k := range q {
		q.Set(k, "xxx")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
