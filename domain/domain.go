package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingURI is returned by Validate when the request carries no project path.
var ErrMissingURI = errors.New(`"uri" is required`)

// NoProjectCode is the placeholder upstream systems send when a project has no code.
const NoProjectCode = "SIN_CODIGO_PROYECTO"

// Request is the document description a generation is driven by.
//
// ProjectDetails is a free-form record of header fields (client, district, node,
// city, codes, dates) keyed by the labels used on the printed form.
type Request struct {
	URI            string         `json:"uri"`
	ProjectDetails map[string]any `json:"projectDetails"`
	Services       []Service      `json:"services"`
}

// Service is one service category with photos at its root and/or in named folders.
type Service struct {
	Name    string   `json:"name"`
	Photos  []Photo  `json:"photos,omitempty"`
	Folders []Folder `json:"folders,omitempty"`
}

// Folder is a named sub-folder of a service.
type Folder struct {
	Name   string  `json:"name"`
	Photos []Photo `json:"photos"`
}

// Photo identifies an image file (without extension) and its caption.
type Photo struct {
	FileName string `json:"fileName"`
	Comment  string `json:"comment"`
}

// PhotoItem is a resolved image path with its final caption, ready for slot assignment.
type PhotoItem struct {
	ImagePath string
	Caption   string
}

// Validate rejects requests that cannot start a generation.
func (r Request) Validate() error {
	if strings.TrimSpace(r.URI) == "" {
		return ErrMissingURI
	}
	for i, s := range r.Services {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("services[%d]: name is required", i)
		}
	}
	return nil
}

// Field returns a header field rendered as text; nil and missing values are absent.
func (r Request) Field(key string) (string, bool) {
	v, ok := r.ProjectDetails[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Fields returns every present header field as text.
func (r Request) Fields() map[string]string {
	out := make(map[string]string, len(r.ProjectDetails))
	for k := range r.ProjectDetails {
		if v, ok := r.Field(k); ok {
			out[k] = v
		}
	}
	return out
}

// ProjectCode returns the "code" field unless it is empty or the placeholder.
func (r Request) ProjectCode() string {
	code, _ := r.Field("code")
	code = strings.TrimSpace(code)
	if code == NoProjectCode {
		return ""
	}
	return code
}

// Service looks a category up by name.
func (r Request) Service(name string) (Service, bool) {
	for _, s := range r.Services {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}

// PhotoID is the key a photo carries in comment batches: "file" or "folder/file".
func PhotoID(folder, file string) string {
	if folder == "" {
		return file
	}
	return folder + "/" + file
}

// CommentBatch maps service name → photo id → caption, for one correction round-trip.
func (r Request) CommentBatch() map[string]map[string]string {
	batch := make(map[string]map[string]string, len(r.Services))
	for _, s := range r.Services {
		if s.Name == "" {
			continue
		}
		comments := make(map[string]string)
		for _, p := range s.Photos {
			comments[PhotoID("", p.FileName)] = p.Comment
		}
		for _, f := range s.Folders {
			for _, p := range f.Photos {
				comments[PhotoID(f.Name, p.FileName)] = p.Comment
			}
		}
		batch[s.Name] = comments
	}
	return batch
}

// Category is a service category that always receives a conformity sheet.
type Category struct {
	Name  string
	Title string
}

// Categories lists every conformity sheet in output order.
var Categories = []Category{
	{Name: "Entrega de Nodos", Title: "ACTA CONFORMIDAD ENTREGA DE NODOS"},
	{Name: "Cables Aereo y Subterraneos", Title: "ACTA CONFORMIDAD TENDIDO AEREO Y SUBTERRANEO"},
	{Name: "Reservas Aereas", Title: "ACTA CONFORMIDAD MUFAS, RESERVAS AEREAS Y CRUCES DE CALLE O AVENIDA"},
	{Name: "OO.CC - CAMARAS", Title: "ACTA CONFORMIDAD OBRA CIVIL - CAMARAS"},
	{Name: "OO.CC - POSTES", Title: "ACTA CONFORMIDAD OBRA CIVIL - INST.POSTES"},
	{Name: "OO.CC - CANALIZADO", Title: "ACTA CONFORMIDAD OBRA CIVIL - CANALIZACION"},
	{Name: "Empalmes", Title: "ACTA CONFORMIDAD FUSIONES"},
	{Name: "Manipulación de MUFA", Title: "ACTA CONFORMIDAD MANIPULACIÓN DE MUFA"},
}
