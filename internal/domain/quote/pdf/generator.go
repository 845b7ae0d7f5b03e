package pdf

import "github.com/RKATechSolutions/crane-care/internal/domain/quote"

// Branding carries everything presentation-specific so the generator has no
// module-level constants: swap the images, colours, or terms per deployment.
type Branding struct {
	CompanyName     string
	HeaderImagePath string
	FooterImagePath string

	// Accent colour for headings and dividers.
	AccentR, AccentG, AccentB int

	// TaxLabel names the tax line in the totals block, e.g. "GST (10%)".
	TaxLabel string

	// ValidityTerm is a fmt verb string taking the validity days, e.g.
	// "This quote is valid for %d days from the date of issue."
	ValidityTerm string
	// Terms are the remaining fixed policy lines rendered after ValidityTerm.
	Terms []string
}

type Generator interface {
	Generate(q quote.Quote, b Branding) ([]byte, error)
}

// DefaultBranding returns the standard RKA look. Image paths come from config.
func DefaultBranding(headerImage, footerImage string) Branding {
	return Branding{
		CompanyName:     "RKA Tech Solutions",
		HeaderImagePath: headerImage,
		FooterImagePath: footerImage,
		AccentR:         0x1f,
		AccentG:         0x3a,
		AccentB:         0x5f,
		TaxLabel:        "GST (10%)",
		ValidityTerm:    "This quote is valid for %d days from the date of issue.",
		Terms: []string{
			"All work is carried out in accordance with AS 2550 and the relevant Australian Standards.",
			"Prices exclude site access equipment unless itemised above.",
			"Payment terms are 14 days from date of invoice.",
			"Any additional defects found during the works will be quoted separately.",
		},
	}
}
