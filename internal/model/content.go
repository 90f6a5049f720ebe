package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ComponentType is the kind of widget placed on a board grid.
type ComponentType string

const (
	ComponentHeader ComponentType = "header"
	ComponentText   ComponentType = "text"
	ComponentImage  ComponentType = "image"
)

// BoardContent is the persisted layout document of a board. Its JSON shape is
// shared with the web editor and with every stored version, so field names
// must not change.
type BoardContent struct {
	GridConfig      GridConfig  `json:"gridConfig"`
	BackgroundColor *string     `json:"backgroundColor,omitempty"`
	Components      []Component `json:"components" validate:"required,dive"`
}

type GridConfig struct {
	Columns   int  `json:"columns" validate:"min=1,max=24"`
	Rows      int  `json:"rows" validate:"min=1,max=100"`
	RowHeight int  `json:"rowHeight" validate:"min=10,max=500"`
	RowGap    *int `json:"rowGap,omitempty" validate:"omitempty,min=0,max=100"`
}

type Component struct {
	ID       string         `json:"id" validate:"required"`
	Type     ComponentType  `json:"type" validate:"oneof=header text image"`
	Position Position       `json:"position"`
	Config   map[string]any `json:"config"`
}

// Position is a component's cell rectangle on the grid.
type Position struct {
	X int `json:"x" validate:"min=0"`
	Y int `json:"y" validate:"min=0"`
	W int `json:"w" validate:"min=1"`
	H int `json:"h" validate:"min=1"`
}

const DefaultBackgroundColor = "#ffffff"

// DefaultBoardContent is the layout every new board starts with: an empty
// 12x8 grid on a white background.
func DefaultBoardContent() BoardContent {
	bg := DefaultBackgroundColor
	return BoardContent{
		GridConfig: GridConfig{
			Columns:   12,
			Rows:      8,
			RowHeight: 100,
		},
		BackgroundColor: &bg,
		Components:      []Component{},
	}
}

var validate = validator.New()

var ErrDuplicateComponentID = errors.New("duplicate component id")

// Validate enforces the grid ranges and component shape the editor allows.
func (c BoardContent) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}

	seen := make(map[string]struct{}, len(c.Components))
	for _, comp := range c.Components {
		if _, dup := seen[comp.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateComponentID, comp.ID)
		}
		seen[comp.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy, including nested component config values.
func (c BoardContent) Clone() (BoardContent, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return BoardContent{}, err
	}
	var out BoardContent
	if err := json.Unmarshal(raw, &out); err != nil {
		return BoardContent{}, err
	}
	if out.Components == nil {
		out.Components = []Component{}
	}
	return out, nil
}
