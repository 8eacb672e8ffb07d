package model

import "github.com/moviedex/moviedex/metadata/pkg/model"

// MoviePage is the view model for the movie UI: the outcome of a search, the
// cached library and a short user-facing error, if any.
type MoviePage struct {
	Query  string
	Result *model.MovieRecord
	Movies []model.MovieRecord
	Error  string
}
