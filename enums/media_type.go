package enums

type MediaType string

const (
	MediaTypeVideo     MediaType = "video"
	MediaTypeSlideshow MediaType = "slideshow"
)
