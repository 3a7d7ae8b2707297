package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Cheapest Makeup Products</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1 { color: #333; }
        table { border-collapse: collapse; width: 100%; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .price { font-weight: bold; color: #e0115f; }
        .sale { color: #e0115f; font-weight: bold; }
        img { max-width: 100px; max-height: 100px; }
        .total { font-weight: bold; background-color: #f2f2f2; }
    </style>
</head>
<body>
    <h1>Cheapest Makeup Products</h1>
{{range .Sections}}
    <h2>{{.Title}} (Total: ${{printf "%.2f" .Total}})</h2>
    <table>
        <tr>
            <th>Category</th>
            <th>Product</th>
            <th>Image</th>
            <th>Price</th>
            <th>Brand</th>
            <th>Store</th>
            <th>Link</th>
        </tr>
{{range .Items}}
        <tr>
            <td>{{.Category}}</td>
            <td>{{.Name}}</td>
            <td>{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}</td>
            <td class="price">${{printf "%.2f" .Price}}{{if .OnSale}}<span class="sale"> (On Sale!)</span>{{end}}</td>
            <td>{{.Brand}}</td>
            <td>{{.Store}}</td>
            <td>{{if .URL}}<a href="{{.URL}}" target="_blank">Buy Now</a>{{end}}</td>
        </tr>
{{end}}
    </table>
{{end}}
</body>
</html>
`

type htmlItem struct {
	Category string
	Name     string
	ImageURL string
	Price    float64
	Brand    string
	Store    string
	URL      string
	OnSale   bool
}

type htmlSection struct {
	Title string
	Total float64
	Items []htmlItem
}

type htmlData struct {
	Sections []htmlSection
}

// WriteHTML renders the full routine comparison as one HTML page, the
// optimal routine first and each store routine after it.
func (a *Analysis) WriteHTML(w io.Writer) error {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	data := htmlData{}
	data.Sections = append(data.Sections, sectionOf(a.Optimal))
	for _, routine := range a.Routines {
		data.Sections = append(data.Sections, sectionOf(routine))
	}

	return tmpl.Execute(w, data)
}

func sectionOf(routine Routine) htmlSection {
	section := htmlSection{
		Title: titleCase(routine.Strategy),
		Total: routine.Total,
	}
	for _, item := range routine.Items {
		rec := item.Record
		onSale := rec.OnSale != nil && *rec.OnSale
		section.Items = append(section.Items, htmlItem{
			Category: titleCase(displayCategory(item.Category)),
			Name:     item.Name,
			ImageURL: rec.ImageURL,
			Price:    item.Price,
			Brand:    rec.Brand,
			Store:    titleCase(string(item.Store)),
			URL:      rec.URL,
			OnSale:   onSale,
		})
	}
	return section
}

// Save writes the text summary and, when enabled, the HTML report
// under dir.
func (a *Analysis) Save(dir string, html bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	summary, err := os.Create(filepath.Join(dir, "savings_summary.txt"))
	if err != nil {
		return err
	}
	defer summary.Close()
	if err := a.WriteSummary(summary); err != nil {
		return err
	}

	if !html {
		return nil
	}
	page, err := os.Create(filepath.Join(dir, "cheapest_makeup_products.html"))
	if err != nil {
		return err
	}
	defer page.Close()
	return a.WriteHTML(page)
}
