package domain

import (
	"strconv"
	"strings"
)

// Member statuses. The worksheet is edited by hand, so other values can
// appear; only StatusActive unlocks login.
const (
	StatusPending = "PENDING"
	StatusActive  = "ACTIVE"
)

// Member is one row of the USER_DATA worksheet.
type Member struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	HQ           string  `json:"hq"`
	CMSID        string  `json:"cmsid"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Mobile       string  `json:"mobile"`
	Status       string  `json:"status"`
	Contribution float64 `json:"contribution"`
}

// Worksheet column order (columns A through I). Row 1 holds these headers;
// data starts at row 2. The contribution column is filled in only by
// administrative edits.
var Columns = []string{"id", "name", "hq", "cmsid", "email", "password", "mobile", "status", "contribution"}

func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// Row returns the append payload in fixed column order. Contribution is
// deliberately omitted: the portal never writes it.
func (m *Member) Row() []any {
	return []any{m.ID, m.Name, m.HQ, m.CMSID, m.Email, m.Password, m.Mobile, m.Status}
}

// MemberFromRow parses one worksheet row. Trailing cells may be missing on
// rows the admin has not extended; they read as zero values. Cell values
// arrive as their stored textual representation, so contribution is parsed
// leniently with a 0 fallback.
func MemberFromRow(row []any) Member {
	m := Member{
		ID:       cellString(row, 0),
		Name:     cellString(row, 1),
		HQ:       cellString(row, 2),
		CMSID:    cellString(row, 3),
		Email:    cellString(row, 4),
		Password: cellString(row, 5),
		Mobile:   cellString(row, 6),
		Status:   cellString(row, 7),
	}
	m.Contribution = cellNumber(row, 8)
	return m
}

func cellString(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func cellNumber(row []any, idx int) float64 {
	if idx >= len(row) || row[idx] == nil {
		return 0
	}
	switch v := row[idx].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}
