package catalogapi

import (
	"fmt"
	"strings"
)

// RemotePart is one normalized inventory row from the catalog service.
type RemotePart struct {
	DesignID  string `json:"design_id"`
	Name      string `json:"name"`
	ColorID   string `json:"color_id,omitempty"` // the catalog's own color id
	ColorName string `json:"color_name,omitempty"`
	ColorRGB  string `json:"color_rgb,omitempty"`
	Quantity  int    `json:"quantity"`
	IsSpare   bool   `json:"is_spare"`
	ImageURL  string `json:"image_url,omitempty"`
}

// RemoteMinifig is one normalized minifig row. DesignID comes from the
// detail endpoint; it stays empty when that lookup was suppressed or missed.
type RemoteMinifig struct {
	FigID    string `json:"fig_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	DesignID string `json:"design_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// RemoteColor is one color from the catalog's color list.
type RemoteColor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	RGB  string `json:"rgb,omitempty"`
}

// The catalog API has drifted across versions; field extraction tolerates
// the known shapes instead of binding to one.

func remotePartFromJSON(raw map[string]interface{}) RemotePart {
	return RemotePart{
		DesignID:  pickString(raw, "part.part_num", "part_num", "design_id"),
		Name:      pickString(raw, "part.name", "name"),
		ColorID:   pickString(raw, "color.id", "color_id"),
		ColorName: pickString(raw, "color.name", "color_name"),
		ColorRGB:  pickString(raw, "color.rgb", "rgb"),
		Quantity:  pickInt(raw, "quantity", "qty"),
		IsSpare:   pickBool(raw, "is_spare"),
		ImageURL:  pickString(raw, "part.part_img_url", "part_img_url", "img_url"),
	}
}

func remoteMinifigFromJSON(raw map[string]interface{}) RemoteMinifig {
	return RemoteMinifig{
		FigID:    pickString(raw, "set_num", "fig_num", "id"),
		Name:     pickString(raw, "set_name", "name"),
		Quantity: pickInt(raw, "quantity", "qty"),
		ImageURL: pickString(raw, "set_img_url", "img_url"),
	}
}

func remoteColorFromJSON(raw map[string]interface{}) RemoteColor {
	return RemoteColor{
		ID:   pickString(raw, "id", "color_id"),
		Name: pickString(raw, "name"),
		RGB:  pickString(raw, "rgb"),
	}
}

// pickString returns the first non-empty string under any of the given keys.
// Dotted keys descend into nested objects. Numbers are stringified, so an id
// field that drifted between string and number still resolves.
func pickString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := lookupPath(m, key).(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

func pickInt(m map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		if v, ok := lookupPath(m, key).(float64); ok {
			return int(v)
		}
	}
	return 0
}

func pickBool(m map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		if v, ok := lookupPath(m, key).(bool); ok {
			return v
		}
	}
	return false
}

func lookupPath(m map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var current interface{} = m
	for _, p := range parts {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = obj[p]
	}
	return current
}
