package mailer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/addictedsalas/project-printing-sub000/internal/design"
	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	"github.com/addictedsalas/project-printing-sub000/internal/order"
)

type orderView struct {
	Contact domain.ContactInfo
	Items   []itemView
	Total   int
}

type itemView struct {
	Number       int
	Garment      string
	Material     string
	Cotton       string
	Brand        string
	SizeCategory string
	Quantity     int
	Sizes        []sizeLine
	Locations    []locationLine
}

type sizeLine struct {
	Size     string
	Color    string
	Quantity string
}

type locationLine struct {
	Label  string
	Design string
}

type attachment struct {
	name      string
	mediaType string
	data      []byte
}

func (a attachment) copy(w io.Writer) error {
	_, err := w.Write(a.data)
	return err
}

func (m *Mailer) orderView(o domain.Order) (orderView, []attachment) {
	view := orderView{Contact: o.ContactInfo}
	var attachments []attachment
	for i, item := range o.Items {
		iv := itemView{
			Number:       i + 1,
			Garment:      string(item.GarmentType),
			Material:     item.MaterialType,
			Cotton:       item.CottonType,
			Brand:        item.Brand,
			SizeCategory: string(item.SizeCategory),
			Quantity:     order.TotalQuantity(item.Sizes),
		}
		for _, key := range domain.AllSizes {
			for _, e := range item.Sizes[key] {
				if strings.TrimSpace(e.Quantity) == "" {
					continue
				}
				iv.Sizes = append(iv.Sizes, sizeLine{Size: string(key), Color: e.Color, Quantity: e.Quantity})
			}
		}
		for _, loc := range item.PrintLocations {
			line := locationLine{Label: loc.Label(), Design: "no design"}
			if value := strings.TrimSpace(item.Designs[loc]); value != "" {
				a, note := m.designAttachment(iv.Number, loc, value)
				line.Design = note
				if a != nil {
					attachments = append(attachments, *a)
				}
			}
			iv.Locations = append(iv.Locations, line)
		}
		view.Total += iv.Quantity
		view.Items = append(view.Items, iv)
	}
	return view, attachments
}

// designAttachment turns a stored design into an attachment plus the note
// shown next to its location in the email body.
func (m *Mailer) designAttachment(n int, loc domain.PrintLocation, value string) (*attachment, string) {
	upload, err := design.Parse(value, m.cfg.MaxDesignBytes)
	switch {
	case errors.Is(err, design.ErrHelpRequested):
		return nil, "design help requested"
	case err != nil:
		m.logger.Warn("design not attached", zap.String("location", string(loc)), zap.Error(err))
		return nil, "design could not be attached"
	}

	a := attachment{
		name:      fmt.Sprintf("item%d-%s%s", n, slug(loc.Label()), upload.Extension()),
		mediaType: upload.MediaType,
		data:      upload.Data,
	}
	if upload.IsImage() && m.cfg.MaxInlineDesignBytes > 0 && len(upload.Data) > m.cfg.MaxInlineDesignBytes {
		preview, err := design.Preview(upload.Data, design.PreviewMaxDim)
		if err != nil {
			m.logger.Warn("design preview failed, sending original", zap.String("location", string(loc)), zap.Error(err))
		} else {
			a.name = fmt.Sprintf("item%d-%s-preview.jpg", n, slug(loc.Label()))
			a.mediaType = "image/jpeg"
			a.data = preview
		}
	}
	return &a, "attached as " + a.name
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "design"
	}
	return out
}
