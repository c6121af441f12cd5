package views

import (
	"net/url"
	"strconv"
	"strings"
)

func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// ListURL builds a skip/limit paging link for a list page.
func ListURL(baseHref string, skip, limit int) string {
	if skip < 0 {
		skip = 0
	}
	values := url.Values{}
	if skip > 0 {
		values.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if len(values) == 0 {
		return baseHref
	}
	return baseHref + "?" + values.Encode()
}

// HumanizeOrgType renders an org-type tag ("tenant", "company", "branch")
// as a label.
func HumanizeOrgType(kind string) string {
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		return "-"
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
