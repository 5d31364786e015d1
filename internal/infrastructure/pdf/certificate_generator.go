// Package pdf implementa la generación del certificado de donación en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del hospital  │  N° Certificado + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TÍTULO: CERTIFICADO DE DONACIÓN DE SANGRE                   │
//	│  DONANTE: Nombre + tipo de sangre                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: fecha, volumen, signos vitales registrados         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de verificación + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/raktsetu/raktsetu-api/internal/application/usecase"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

var _ usecase.CertificateGenerator = (*CertificateGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 153, Green: 27, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CertificateGenerator implementa usecase.CertificateGenerator usando Maroto v2.
type CertificateGenerator struct{}

// NewCertificateGenerator construye el generador.
func NewCertificateGenerator() *CertificateGenerator { return &CertificateGenerator{} }

// GenerateDonationCertificate genera el PDF del certificado y devuelve sus bytes.
func (g *CertificateGenerator) GenerateDonationCertificate(
	_ context.Context,
	donation *entity.Donation,
	donor, hospital *entity.User,
) ([]byte, error) {
	hospitalName := hospital.FirstName + " " + hospital.LastName
	if hospital.Hospital != nil && hospital.Hospital.HospitalName != "" {
		hospitalName = hospital.Hospital.HospitalName
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Certificado de Donación de Sangre", true).
		WithAuthor(hospitalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(donation, hospitalName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(titleRow())
	m.AddRows(donorRow(donation, donor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range detailRows(donation) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(donation))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar certificado: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: hospital (izq) y número de certificado + fecha (der).
func headerRow(donation *entity.Donation, hospitalName string) core.Row {
	fecha := donation.AppointmentDate.Format("02/01/2006")
	if donation.CompletedAt != nil {
		fecha = donation.CompletedAt.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(hospitalName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Centro de donación de sangre", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CERTIFICADO N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(donation.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func titleRow() core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CERTIFICADO DE DONACIÓN DE SANGRE", props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center,
				Color: colorPrimary, Top: 5,
			}),
		),
	)
}

// donorRow: identificación del donante y su tipo de sangre.
func donorRow(donation *entity.Donation, donor *entity.User) core.Row {
	bloodType := donation.BloodType
	if bloodType == "" && donor.Donor != nil {
		bloodType = donor.Donor.BloodType
	}

	return row.New(16).Add(
		col.New(12).Add(
			text.New("Se certifica que", props.Text{Size: 9, Top: 1, Color: colorGray}),
			text.New(donor.FirstName+" "+donor.LastName, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6,
			}),
			text.New("Tipo de sangre: "+nonEmpty(bloodType, "—"), props.Text{
				Size: 9, Top: 13, Color: colorGray,
			}),
		),
	)
}

// detailRows: fecha, volumen y signos vitales de la donación completada.
func detailRows(donation *entity.Donation) []core.Row {
	item := func(label, value string) core.Row {
		return row.New(7).Add(
			col.New(4).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			})),
			col.New(8).Add(text.New(value, props.Text{
				Size: 9, Top: 1, Color: colorGray,
			})),
		)
	}

	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("DETALLE DE LA DONACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
		item("Fecha de la cita:", donation.AppointmentDate.Format("02/01/2006 15:04")),
	}

	if donation.AmountML != nil {
		rows = append(rows, item("Volumen donado:", fmt.Sprintf("%d ml", *donation.AmountML)))
	}
	if donation.Hemoglobin != nil {
		rows = append(rows, item("Hemoglobina:", fmt.Sprintf("%.1f g/dL", *donation.Hemoglobin)))
	}
	if donation.BloodPressure != "" {
		rows = append(rows, item("Presión arterial:", donation.BloodPressure))
	}
	if donation.Pulse != nil {
		rows = append(rows, item("Pulso:", fmt.Sprintf("%d ppm", *donation.Pulse)))
	}
	if donation.Temperature != nil {
		rows = append(rows, item("Temperatura:", fmt.Sprintf("%.1f °C", *donation.Temperature)))
	}
	if donation.Notes != "" {
		rows = append(rows, item("Observaciones:", donation.Notes))
	}
	return rows
}

// footerRow: QR con el id de la donación para verificación + leyenda.
func footerRow(donation *entity.Donation) core.Row {
	return row.New(24).Add(
		col.New(3).Add(
			code.NewQr(donation.ID, props.Rect{
				Center: false, Percent: 90, Top: 2,
			}),
		),
		col.New(9).Add(
			text.New("Verificación", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
			text.New("El código QR contiene el identificador único de la donación.", props.Text{
				Size: 7.5, Color: colorGray, Top: 7,
			}),
			text.New("Gracias por donar sangre: cada donación puede salvar hasta tres vidas.", props.Text{
				Size: 7.5, Color: colorGray, Top: 12,
			}),
		),
	)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// shortID primer bloque del UUID, suficiente como número visible del certificado.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
