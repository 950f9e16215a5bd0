package domain

import (
	"fmt"

	"github.com/bxcodec/faker/v4"
)

// FakeRequest builds a demo request for uri. photos[i] is the number of photos
// given to Categories[i]; categories beyond len(photos) get no service entry.
// Every third photo is placed in a sub-folder so both input shapes are exercised.
func FakeRequest(uri string, photos []int) Request {
	req := Request{
		URI: uri,
		ProjectDetails: map[string]any{
			"Contratista":               faker.Name(),
			"Distrito":                  faker.Word(),
			"Nodo":                      fmt.Sprintf("ND-%03d", len(photos)+1),
			"Nombre cliente / Proyecto": faker.Name(),
			"Direccion Cliente":         faker.Sentence(),
			"Ciudad":                    faker.Word(),
			"N° PROY/ COD: AX":          faker.UUIDDigit()[:8],
			"Fecha Inicio":              faker.Date(),
			"Fecha Término":             faker.Date(),
			"code":                      faker.UUIDDigit()[:6],
		},
	}

	for i, n := range photos {
		if i >= len(Categories) {
			break
		}
		s := Service{Name: Categories[i].Name}
		folder := Folder{Name: "Tramo " + faker.Word()}
		for j := range n {
			p := Photo{FileName: fmt.Sprintf("foto_%02d", j+1), Comment: faker.Sentence()}
			if j%3 == 2 {
				folder.Photos = append(folder.Photos, p)
				continue
			}
			s.Photos = append(s.Photos, p)
		}
		if len(folder.Photos) > 0 {
			s.Folders = append(s.Folders, folder)
		}
		req.Services = append(req.Services, s)
	}
	return req
}
