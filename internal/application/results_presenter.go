// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"fmt"

	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
)

const (
	// DisplayLimit is the number of featured items shown per category.
	DisplayLimit = 5

	// EagerTiles is the number of leading tiles whose images load first.
	EagerTiles = 2

	// DefaultReasonWidth is the one-line reason width in terminal cells.
	DefaultReasonWidth = 40
)

// Tile is one rendered item in a category grid.
type Tile struct {
	Item     domain.RecommendationItem
	Category domain.Category
	Image    domain.ImageRef
	Name     string
	Reason   string
	Favorite bool
	Eager    bool
}

// CategorySection is a labelled grid with its see-all target.
type CategorySection struct {
	Category domain.Category
	Label    string
	SeeAll   domain.Target
	Tiles    []Tile
	Total    int
}

// ResultsPresenter shapes result pages into bounded category sections.
type ResultsPresenter struct {
	index       domain.CategoryIndex
	favorites   domain.FavoritesStore
	selection   *SelectionController
	reasonWidth int
}

// NewResultsPresenter creates a ResultsPresenter. favorites may be nil.
func NewResultsPresenter(index domain.CategoryIndex, favorites domain.FavoritesStore,
	selection *SelectionController, reasonWidth int,
) *ResultsPresenter {
	if reasonWidth <= 0 {
		reasonWidth = DefaultReasonWidth
	}

	return &ResultsPresenter{
		index:       index,
		favorites:   favorites,
		selection:   selection,
		reasonWidth: reasonWidth,
	}
}

// Index returns the category index used for labels and ordering.
func (p *ResultsPresenter) Index() domain.CategoryIndex {
	return p.index
}

// Present returns one section per non-empty category, in index order, each
// holding at most DisplayLimit tiles in source order.
func (p *ResultsPresenter) Present(page domain.ResultPage) []CategorySection {
	sections := make([]CategorySection, 0, len(p.index.Categories()))

	for _, category := range p.index.Categories() {
		items := page.Set.Items(category)
		if len(items) == 0 {
			continue
		}

		sections = append(sections, p.section(page, category, items[:min(DisplayLimit, len(items))], len(items)))
	}

	return sections
}

// Listing returns the unbounded section for category.
func (p *ResultsPresenter) Listing(page domain.ResultPage, category domain.Category) (CategorySection, error) {
	if !category.Valid() {
		return CategorySection{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}

	items := page.Set.Items(category)

	return p.section(page, category, items, len(items)), nil
}

// Activate opens the detail dialog for tile.
func (p *ResultsPresenter) Activate(tile Tile) error {
	return p.selection.Open(tile.Item)
}

// Refresh recomputes the favorite flag of each tile.
func (p *ResultsPresenter) Refresh(sections []CategorySection) {
	for i := range sections {
		for j := range sections[i].Tiles {
			sections[i].Tiles[j].Favorite = p.isFavorite(sections[i].Tiles[j].Name)
		}
	}
}

func (p *ResultsPresenter) section(page domain.ResultPage, category domain.Category,
	items []domain.RecommendationItem, total int,
) CategorySection {
	tiles := make([]Tile, 0, len(items))

	for i, item := range items {
		tiles = append(tiles, Tile{
			Item:     item,
			Category: category,
			Image:    ImageRefFor(item),
			Name:     item.Name,
			Reason:   stringutil.Truncate(stringutil.OneLine(item.Reason), p.reasonWidth),
			Favorite: p.isFavorite(item.Name),
			Eager:    i < EagerTiles,
		})
	}

	return CategorySection{
		Category: category,
		Label:    p.index.Label(category),
		SeeAll:   page.SeeAll(category),
		Tiles:    tiles,
		Total:    total,
	}
}

func (p *ResultsPresenter) isFavorite(name string) bool {
	return p.favorites != nil && p.favorites.IsFavorite(name)
}

// ImageRefFor builds the image reference for item. The fallback is keyed by name.
func ImageRefFor(item domain.RecommendationItem) domain.ImageRef {
	return domain.ImageRef{
		Src:          item.ImageURL,
		FallbackText: stringutil.Initials(item.Name),
		Identifier:   item.Name,
	}
}
