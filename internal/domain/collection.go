package domain

// Collection describes a user-facing named bucket of saved content.
// The descriptor set is compiled in; only the item lists persist.
type Collection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// CollectionView is a descriptor annotated with its current items
type CollectionView struct {
	Collection
	Items []CollectionEntry `json:"items"`
}

// DefaultCollections is the fixed bucket set available at first run
var DefaultCollections = []Collection{
	{ID: "to-watch", Name: "To Watch", Color: "#44E4B1", Icon: "▤"},
	{ID: "favorites", Name: "Favorites", Color: "#FF6B9D", Icon: "★"},
	{ID: "classics", Name: "Classics", Color: "#FFD700", Icon: "▣"},
}
