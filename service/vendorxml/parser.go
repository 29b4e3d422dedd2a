package vendorxml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// LineItem is one normalized row from a vendor inventory export.
// PartID and ColorID are the vendor's own identifiers; the reconciliation
// engine resolves them against the cross-reference tables.
type LineItem struct {
	ItemType  string `json:"item_type,omitempty"`
	PartID    string `json:"part_id"`
	ColorID   string `json:"color_id"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition,omitempty"` // "N", "U" or "" (unspecified)
	Comments  string `json:"comments,omitempty"`
	Remarks   string `json:"remarks,omitempty"`
}

// itemPaths are the known locations of the item list, probed in priority
// order. Exporter versions disagree on the wrapper elements; the first path
// that yields any items wins.
var itemPaths = [][]string{
	{"inventory", "item"},
	{"brickstockxml", "inventory", "item"},
	{"brickstorexml", "inventory", "item"},
	{"xml", "inventory", "item"},
	{"order", "item"},
}

// fieldAliases map normalized field names to the tag spellings seen across
// exporter versions. Lookup is case-insensitive.
var fieldAliases = map[string][]string{
	"itemtype":  {"itemtype", "type", "itemtypeid"},
	"partid":    {"itemid", "partid", "part", "designid", "id"},
	"colorid":   {"color", "colorid", "colour", "colourid"},
	"quantity":  {"qty", "quantity", "qt", "q", "qtty", "minqty"},
	"condition": {"condition", "new_or_used", "cond", "neworused"},
	"comments":  {"comments", "comment", "description"},
	"remarks":   {"remarks", "remark", "extra", "notes"},
}

// Parse decodes a vendor XML export into normalized line-items. Rows missing
// a part id, color id or a positive quantity are dropped silently; a single
// malformed row never fails the whole import. An unparseable document is an
// error; a well-formed document with no recognizable item list yields an
// empty slice.
func Parse(data []byte) ([]LineItem, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse vendor export: %w", err)
	}
	doc := map[string]interface{}{strings.ToLower(root.XMLName.Local): nodeValue(root)}

	rawItems := probeItemPaths(doc)
	items := make([]LineItem, 0, len(rawItems))
	for _, raw := range rawItems {
		m, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		item, ok := extractItem(m)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// probeItemPaths walks each known path through the document and returns the
// item list from the first path that yields anything.
func probeItemPaths(doc map[string]interface{}) []interface{} {
	for _, path := range itemPaths {
		items := walkPath(doc, path)
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

func walkPath(doc map[string]interface{}, path []string) []interface{} {
	var current interface{} = doc
	for i, name := range path {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		v, found := lookupCI(m, name)
		if !found {
			return nil
		}
		if i == len(path)-1 {
			if list, ok := v.([]interface{}); ok {
				return list
			}
			return []interface{}{v}
		}
		current = v
	}
	return nil
}

// lookupCI finds a key case-insensitively.
func lookupCI(m map[string]interface{}, name string) (interface{}, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// fieldText resolves the first matching alias to its text value. Handles
// both plain scalar leaves and the {#text: value} encoding some converters
// emit for elements carrying attributes.
func fieldText(item map[string]interface{}, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := lookupCI(item, alias); ok {
			if s := asText(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func asText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}:
		if inner, ok := t["#text"]; ok {
			return asText(inner)
		}
	case []interface{}:
		if len(t) > 0 {
			return asText(t[0])
		}
	}
	return ""
}

// extractItem builds a LineItem from one item map. Returns false when the
// row must be dropped.
func extractItem(m map[string]interface{}) (LineItem, bool) {
	item := LineItem{
		ItemType: strings.ToUpper(fieldText(m, "itemtype")),
		PartID:   fieldText(m, "partid"),
		ColorID:  fieldText(m, "colorid"),
		Comments: fieldText(m, "comments"),
		Remarks:  fieldText(m, "remarks"),
	}
	if item.PartID == "" || item.ColorID == "" {
		return LineItem{}, false
	}
	qty, err := strconv.Atoi(fieldText(m, "quantity"))
	if err != nil || qty <= 0 {
		return LineItem{}, false
	}
	item.Quantity = qty

	switch strings.ToUpper(fieldText(m, "condition")) {
	case "N":
		item.Condition = "N"
	case "U":
		item.Condition = "U"
	}
	return item, true
}

// xmlNode is a generic XML node for unmarshaling arbitrary exports.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

// nodeValue converts a node to a string (leaf) or map (element). Children
// occurring more than once group into a slice. Attributes are kept with an
// @ prefix; a leaf with attributes becomes {#text: content}.
func nodeValue(node xmlNode) interface{} {
	if len(node.Children) == 0 && len(node.Attrs) == 0 {
		return strings.TrimSpace(node.Content)
	}

	result := make(map[string]interface{})
	for _, attr := range node.Attrs {
		result["@"+attr.Name.Local] = attr.Value
	}
	if len(node.Children) == 0 {
		if content := strings.TrimSpace(node.Content); content != "" {
			result["#text"] = content
		}
		return result
	}

	groups := make(map[string][]interface{})
	for _, child := range node.Children {
		name := strings.ToLower(child.XMLName.Local)
		groups[name] = append(groups[name], nodeValue(child))
	}
	for name, values := range groups {
		if len(values) == 1 {
			result[name] = values[0]
		} else {
			result[name] = values
		}
	}
	return result
}
