package domain

import "github.com/rs/zerolog"

// ImageResolver finds the file on disk for a service/folder/file identifier.
type ImageResolver interface {
	Resolve(service, folder, file string) (string, bool)
}

// Flatten turns the root photos and then every folder's photos of s into one
// ordered sequence. corrected overrides captions by photo id; folder photos get
// a "<folder> - " prefix. Photos whose file cannot be resolved are dropped.
func Flatten(s Service, corrected map[string]string, images ImageResolver, logger zerolog.Logger) []PhotoItem {
	var items []PhotoItem

	add := func(folder string, p Photo) {
		id := PhotoID(folder, p.FileName)
		caption := p.Comment
		if c, ok := corrected[id]; ok && c != "" {
			caption = c
		}
		if folder != "" {
			caption = folder + " - " + caption
		}

		path, ok := images.Resolve(s.Name, folder, p.FileName)
		if !ok {
			logger.Warn().Str("service", s.Name).Str("photo", id).Msg("image file not found, photo skipped")
			return
		}
		items = append(items, PhotoItem{ImagePath: path, Caption: caption})
	}

	for _, p := range s.Photos {
		add("", p)
	}
	for _, f := range s.Folders {
		for _, p := range f.Photos {
			add(f.Name, p)
		}
	}
	return items
}
