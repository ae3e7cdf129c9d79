package steam

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// App is one row of the upstream catalog listing.
type App struct {
	AppID int64  `json:"appid"`
	Name  string `json:"name"`
}

// AppPage is one page of the paginated catalog walk.
type AppPage struct {
	Apps            []App
	HaveMoreResults bool
	LastAppID       int64
}

// PriceOverview mirrors the upstream price structure. Final is in the
// currency's minor unit.
type PriceOverview struct {
	Currency       string `json:"currency"`
	Initial        int64  `json:"initial"`
	Final          int64  `json:"final"`
	FinalFormatted string `json:"final_formatted"`
}

// AppDetail is the normalized detail record built at the client boundary.
// Raw upstream shapes never travel past this package.
type AppDetail struct {
	AppID            int64             `json:"appid"`
	Name             string            `json:"name"`
	ShortDescription string            `json:"short_description,omitempty"`
	HeaderImage      string            `json:"header_image,omitempty"`
	Screenshots      []string          `json:"screenshots,omitempty"`
	Price            *PriceOverview    `json:"price_overview,omitempty"`
	IsFree           bool              `json:"is_free"`
	RequiredAge      int               `json:"required_age"`
	Categories       []string          `json:"categories,omitempty"`
	Genres           []string          `json:"genres,omitempty"`
	Platforms        map[string]bool   `json:"platforms,omitempty"`
	ReleaseDate      string            `json:"release_date,omitempty"`
}

// Image picks the display image the way the reference behavior does: the
// header image, else the first screenshot.
func (d *AppDetail) Image() string {
	if d == nil {
		return ""
	}
	if d.HeaderImage != "" {
		return d.HeaderImage
	}
	if len(d.Screenshots) > 0 {
		return d.Screenshots[0]
	}
	return ""
}

// AgeRestricted reports whether the app is gated behind the adult threshold
// or carries a mature/adult category.
func (d *AppDetail) AgeRestricted() bool {
	if d == nil {
		return false
	}
	if d.RequiredAge >= adultAgeThreshold {
		return true
	}
	for _, c := range d.Categories {
		lower := strings.ToLower(c)
		if strings.Contains(lower, "mature") || strings.Contains(lower, "adult") {
			return true
		}
	}
	return false
}

// Free reports whether the final price is zero. Apps without a price
// overview fall back to the upstream is_free flag.
func (d *AppDetail) Free() bool {
	if d == nil {
		return false
	}
	if d.Price != nil {
		return d.Price.Final == 0
	}
	return d.IsFree
}

const adultAgeThreshold = 18

// appListEnvelope is the GetAppList wire shape. Response stays a pointer so
// a missing top-level field is detectable as a malformed body.
type appListEnvelope struct {
	Response *struct {
		Apps            []App `json:"apps"`
		HaveMoreResults bool  `json:"have_more_results"`
		LastAppID       int64 `json:"last_appid"`
	} `json:"response"`
}

// detailEnvelope is one value of the appdetails response map, keyed by the
// stringified app id.
type detailEnvelope struct {
	Success bool        `json:"success"`
	Data    *detailData `json:"data"`
}

type detailData struct {
	Name             string         `json:"name"`
	ShortDescription string         `json:"short_description"`
	HeaderImage      string         `json:"header_image"`
	Screenshots      []screenshot   `json:"screenshots"`
	PriceOverview    *PriceOverview `json:"price_overview"`
	IsFree           bool           `json:"is_free"`
	RequiredAge      looseInt       `json:"required_age"`
	Categories       []described    `json:"categories"`
	Genres           []described    `json:"genres"`
	Platforms        map[string]bool `json:"platforms"`
	ReleaseDate      *struct {
		Date string `json:"date"`
	} `json:"release_date"`
}

type screenshot struct {
	PathFull string `json:"path_full"`
}

type described struct {
	Description string `json:"description"`
}

// looseInt accepts both numeric and quoted values; the upstream emits
// required_age as either depending on the app.
type looseInt int

func (l *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*l = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Values like "18+" appear in the wild; keep digits only.
		digits := strings.TrimFunc(s, func(r rune) bool { return r < '0' || r > '9' })
		n, err = strconv.Atoi(digits)
		if err != nil {
			*l = 0
			return nil
		}
	}
	*l = looseInt(n)
	return nil
}

func (d *detailData) normalize(appID int64) *AppDetail {
	if d == nil {
		return nil
	}
	detail := &AppDetail{
		AppID:            appID,
		Name:             d.Name,
		ShortDescription: d.ShortDescription,
		HeaderImage:      d.HeaderImage,
		Price:            d.PriceOverview,
		IsFree:           d.IsFree,
		RequiredAge:      int(d.RequiredAge),
		Platforms:        d.Platforms,
	}
	for _, s := range d.Screenshots {
		if s.PathFull != "" {
			detail.Screenshots = append(detail.Screenshots, s.PathFull)
		}
	}
	for _, c := range d.Categories {
		if c.Description != "" {
			detail.Categories = append(detail.Categories, c.Description)
		}
	}
	for _, g := range d.Genres {
		if g.Description != "" {
			detail.Genres = append(detail.Genres, g.Description)
		}
	}
	if d.ReleaseDate != nil {
		detail.ReleaseDate = d.ReleaseDate.Date
	}
	return detail
}

// decodeDetailEnvelope parses the {"<id>":{"success":..,"data":{..}}} shape.
func decodeDetailEnvelope(body []byte, appID int64) (*detailEnvelope, error) {
	var envelope map[string]detailEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	e, ok := envelope[strconv.FormatInt(appID, 10)]
	if !ok {
		return nil, nil
	}
	return &e, nil
}
