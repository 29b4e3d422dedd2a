package models

import gql "github.com/graph-gophers/graphql-go"

// --- Catalog ---

type Part struct {
	PartID        gql.ID      `json:"part_id" mapstructure:"part_id"`
	ShapeKey      string      `json:"shape_key" mapstructure:"shape_key"`
	Name          *string     `json:"name,omitempty" mapstructure:"name"`
	ImageURL      *string     `json:"image_url,omitempty" mapstructure:"image_url"`
	IsPrinted     bool        `json:"is_printed" mapstructure:"is_printed"`
	IsMinifigPart bool        `json:"is_minifig_part" mapstructure:"is_minifig_part"`
	SourceIds     []*SourceID `json:"source_ids" mapstructure:"-"`
	Lots          []*Lot      `json:"lots" mapstructure:"-"`
}

type SourceID struct {
	Source   string `json:"source"`
	SourceId string `json:"source_id"`
}

type Color struct {
	ColorID gql.ID  `json:"color_id"`
	Name    string  `json:"name"`
	RGB     *string `json:"rgb,omitempty"`
}

// --- Inventory ---

type Lot struct {
	LotID     gql.ID `json:"lot_id"`
	PartID    int32  `json:"part_id"`
	ColorID   int32  `json:"color_id"`
	Condition string `json:"condition"`
	Quantity  int32  `json:"quantity"`
	Notes     string `json:"notes"`
}

type ImportBatch struct {
	BatchID    gql.ID  `json:"batch_id"`
	Source     string  `json:"source"`
	FileName   *string `json:"file_name,omitempty"`
	LotCount   int32   `json:"lot_count"`
	PieceCount int32   `json:"piece_count"`
	CreatedAt  string  `json:"created_at"`
}

// --- Search ---

type PartSearchResult struct {
	Items      []*Part   `json:"items"`
	TotalCount int32     `json:"total_count"`
	PageInfo   *PageInfo `json:"page_info"`
}

type PageInfo struct {
	PageSize    int32 `json:"page_size"`
	CurrentPage int32 `json:"current_page"`
	TotalPages  int32 `json:"total_pages"`
}
