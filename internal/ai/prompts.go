package ai

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

const (
	TemplateAmazon   = "amazon"
	TemplateMeesho   = "meesho"
	TemplateFlipkart = "flipkart"
	TemplateGeneric  = "generic"
)

// NormalizeTemplate maps a user supplied template name to one of the known
// templates. Anything unrecognised is generic.
func NormalizeTemplate(name string) string {
	switch key := slug.Make(name); key {
	case TemplateAmazon, TemplateMeesho, TemplateFlipkart:
		return key
	default:
		return TemplateGeneric
	}
}

// ListingPrompt builds the listing prompt for the requested template.
func ListingPrompt(in ListingInput) string {
	var instruction, productLabel string
	switch NormalizeTemplate(in.Template) {
	case TemplateAmazon:
		instruction = "Create a professional Amazon product listing."
		productLabel = "Product Name"
	case TemplateMeesho:
		instruction = "Create a Meesho style product listing in simple Hinglish."
		productLabel = "Product"
	case TemplateFlipkart:
		instruction = "Create a Flipkart style product listing."
		productLabel = "Product"
	default:
		instruction = "Create a general e-commerce product listing."
		productLabel = "Product"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate content in %s.\n", in.Language)
	b.WriteString(instruction)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s: %s\n", productLabel, in.ProductName)
	fmt.Fprintf(&b, "Category: %s\n", in.Category)
	fmt.Fprintf(&b, "Features: %s\n", in.Features)
	return b.String()
}

// KeywordsPrompt asks for three groups of SEO keywords.
func KeywordsPrompt(product string) string {
	return fmt.Sprintf(`Give me SEO keywords for an e-commerce product.

Product: %s

Generate:
1. 10 High search keywords
2. 10 Long tail keywords
3. 5 Hindi + English mix keywords
Format in clean bullet points.
`, product)
}
