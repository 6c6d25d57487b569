package evaluator

import (
	"strings"

	"github.com/adelinv/replyscore/internal/helpscout"
)

// Product distinguishes the two product lines the support team covers.
// The rubric cares because the correct customer-facing term differs:
// the Shopify integration is an "app", the WordPress one a "plugin".
type Product string

const (
	ProductShopify   Product = "shopify"
	ProductWordPress Product = "wordpress"
)

// Term is the word the reply should use for the product.
func (p Product) Term() string {
	if p == ProductShopify {
		return "app"
	}
	return "plugin"
}

// WrongTerm is the word the reply must avoid.
func (p Product) WrongTerm() string {
	if p == ProductShopify {
		return "plugin"
	}
	return "app"
}

// Label is the human-readable product name shown in the sidebar footer.
func (p Product) Label() string {
	if p == ProductShopify {
		return "Shopify App"
	}
	return "WordPress Plugin"
}

// DetectProduct classifies the conversation as Shopify or WordPress.
// Conversation tags are checked first: agents tag the product even
// when the text never names it. Then the subject and thread bodies
// are scanned. WordPress is the default.
func DetectProduct(subject string, tags []helpscout.Tag, threads []helpscout.Thread) Product {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag.Name), "shopify") {
			return ProductShopify
		}
	}
	if strings.Contains(strings.ToLower(subject), "shopify") {
		return ProductShopify
	}
	for _, thread := range threads {
		if strings.Contains(strings.ToLower(thread.Body), "shopify") {
			return ProductShopify
		}
	}
	return ProductWordPress
}
