package api

import (
	"maps"
	"net/http"

	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/internal/blocks"
	"github.com/JaimeStill/docquest/internal/config"
	"github.com/JaimeStill/docquest/internal/export"
	"github.com/JaimeStill/docquest/internal/review"
	"github.com/JaimeStill/docquest/pkg/openapi"
)

// Spec builds the OpenAPI document for the API module. Catalog paths are
// included only when withCatalog is set.
func Spec(cfg *config.Config, withCatalog bool) *openapi.Spec {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.Components.AddSchemas(schemas())

	base := cfg.API.BasePath
	add := func(method, path string, op *openapi.Operation) {
		spec.AddOperation(method, base+path, op)
	}

	add("GET", "/blocks", &openapi.Operation{
		Summary: "List classified blocks with their review status",
		Tags:    []string{"Blocks"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArray("Annotated blocks in document order", "AnnotatedBlock"),
			422: openapi.ErrorRef(http.StatusUnprocessableEntity),
		},
	})
	add("POST", "/blocks/raw", &openapi.Operation{
		Summary:     "Store raw extracted blocks",
		Tags:        []string{"Blocks"},
		RequestBody: &openapi.RequestBody{Required: true, Content: jsonArrayOf("Block")},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Raw blocks stored", "IngestResult"),
			400: openapi.ErrorRef(http.StatusBadRequest),
		},
	})
	add("POST", "/blocks/extract", &openapi.Operation{
		Summary:     "Split a plain-text dump into raw blocks",
		Description: "Pages are separated by form feeds and blocks by blank lines.",
		Tags:        []string{"Blocks"},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"text/plain": {Schema: &openapi.Schema{Type: "string"}},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Raw blocks stored", "IngestResult"),
			400: openapi.ErrorRef(http.StatusBadRequest),
		},
	})
	add("POST", "/blocks/classify", &openapi.Operation{
		Summary: "Classify the raw blocks",
		Tags:    []string{"Blocks"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Classification summary", "Summary"),
			404: openapi.ErrorRef(http.StatusNotFound),
			422: openapi.ErrorRef(http.StatusUnprocessableEntity),
			502: openapi.ErrorRef(http.StatusBadGateway),
		},
	})
	add("PUT", "/blocks/{id}", &openapi.Operation{
		Summary:     "Record a review decision",
		Tags:        []string{"Review"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Block id")},
		RequestBody: openapi.RequestBodyJSON("ReviewUpdate", true),
		Responses: map[int]*openapi.Response{
			200: {Description: "Review recorded"},
			400: openapi.ErrorRef(http.StatusBadRequest),
			404: openapi.ErrorRef(http.StatusNotFound),
		},
	})
	add("POST", "/export", &openapi.Operation{
		Summary:     "Export the approved set",
		Tags:        []string{"Export"},
		RequestBody: openapi.RequestBodyJSON("ExportRequest", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseText("Rendered export attachment", exportContentTypes()...),
			400: openapi.ErrorRef(http.StatusBadRequest),
			404: openapi.ErrorRef(http.StatusNotFound),
		},
	})
	add("GET", "/pipeline/status", &openapi.Operation{
		Summary: "Report which artifacts exist",
		Tags:    []string{"Pipeline"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Artifact presence", "Status"),
		},
	})
	add("DELETE", "/pipeline", &openapi.Operation{
		Summary: "Clear derived artifacts, keeping raw blocks",
		Tags:    []string{"Pipeline"},
		Responses: map[int]*openapi.Response{
			204: {Description: "Artifacts cleared"},
		},
	})
	add("GET", "/artifacts/{name}", &openapi.Operation{
		Summary:    "Download a stored artifact",
		Tags:       []string{"Artifacts"},
		Parameters: []*openapi.Parameter{artifactParam()},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseText("Artifact JSON", "application/json"),
			404: openapi.ErrorRef(http.StatusNotFound),
		},
	})

	if withCatalog {
		add("GET", "/catalog/blocks", &openapi.Operation{
			Summary: "Search catalogued blocks",
			Tags:    []string{"Catalog"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Content search", false),
				openapi.QueryParam("sort", "string", "Comma-separated sort fields, - prefix for descending", false),
				openapi.QueryParam("document_id", "string", "Owning document", false),
				openapi.QueryParam("type", "string", "Block category", false),
				openapi.QueryParam("block_page", "integer", "Source page", false),
				openapi.QueryParam("review_status", "string", "Review status", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of catalog entries", "EntryPage"),
				400: openapi.ErrorRef(http.StatusBadRequest),
			},
		})
		add("GET", "/catalog/documents", &openapi.Operation{
			Summary: "List catalogued documents",
			Tags:    []string{"Catalog"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseArray("Documents", "Document"),
			},
		})
		add("GET", "/catalog/documents/{id}/pairs", &openapi.Operation{
			Summary:    "List question/answer pairs of a document",
			Tags:       []string{"Catalog"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Document id")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseArray("Pairs in document order", "Pair"),
				404: openapi.ErrorRef(http.StatusNotFound),
			},
		})
	}

	return spec
}

func schemas() map[string]*openapi.Schema {
	block := map[string]*openapi.Schema{
		"id":       {Type: "string", Example: "page_1_block_0"},
		"page":     {Type: "integer", Description: "Zero-based source page"},
		"content":  {Type: "string"},
		"type":     {Type: "string", Enum: enum(append([]blocks.Category{blocks.Unclassified}, blocks.Categories...))},
		"position": {Type: "integer", Description: "Order of the block within its page"},
	}
	statusSchema := &openapi.Schema{Type: "string", Enum: enum([]review.Status{review.Pending, review.Approved, review.Rejected})}

	annotated := withProps(block, map[string]*openapi.Schema{
		"review_status": statusSchema,
		"reviewer":      {Type: "string"},
		"notes":         {Type: "string"},
	})
	entry := withProps(block, map[string]*openapi.Schema{
		"document_id":   {Type: "string"},
		"review_status": statusSchema,
	})

	return map[string]*openapi.Schema{
		"Block":          {Type: "object", Required: []string{"id", "content"}, Properties: block},
		"AnnotatedBlock": {Type: "object", Properties: annotated},
		"ReviewUpdate": {
			Type:     "object",
			Required: []string{"review_status"},
			Properties: map[string]*openapi.Schema{
				"review_status": statusSchema,
				"reviewer":      {Type: "string"},
				"notes":         {Type: "string"},
				"updated_at":    {Type: "string", Format: "date-time"},
			},
		},
		"ExportRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"format": {Type: "string", Enum: enum(export.Formats), Default: string(export.JSON)},
				"order":  {Type: "string", Enum: enum([]export.Order{export.ByDocument, export.ByApproval})},
			},
		},
		"IngestResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"document_id": {Type: "string"},
				"blocks":      {Type: "integer"},
			},
		},
		"Summary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"document_id": {Type: "string"},
				"total":       {Type: "integer"},
				"counts":      {Type: "object", Description: "Blocks per category"},
				"catalog":     openapi.SchemaRef("SyncResult"),
			},
		},
		"SyncResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"document_id": {Type: "string"},
				"blocks":      {Type: "integer"},
				"pairs":       {Type: "integer"},
			},
		},
		"Status": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"document_id": {Type: "string"},
				"artifacts":   {Type: "object", Description: "Artifact name to presence"},
			},
		},
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string"},
				"filename":    {Type: "string"},
				"block_count": {Type: "integer"},
				"pair_count":  {Type: "integer"},
				"created_at":  {Type: "string", Format: "date-time"},
				"synced_at":   {Type: "string", Format: "date-time"},
			},
		},
		"Entry": {Type: "object", Properties: entry},
		"EntryPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Entry")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"Pair": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string", Format: "uuid"},
				"document_id":       {Type: "string"},
				"question_block_id": {Type: "string"},
				"question":          {Type: "string"},
				"answer":            {Type: "string"},
			},
		},
	}
}

func jsonArrayOf(schemaName string) map[string]*openapi.MediaType {
	return map[string]*openapi.MediaType{
		"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef(schemaName)}},
	}
}

func artifactParam() *openapi.Parameter {
	p := openapi.PathParam("name", "Artifact file name")
	p.Schema.Enum = enum(artifacts.All)
	return p
}

func exportContentTypes() []string {
	types := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		types[i] = f.ContentType()
	}
	return types
}

func enum[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func withProps(base, extra map[string]*openapi.Schema) map[string]*openapi.Schema {
	out := maps.Clone(base)
	maps.Copy(out, extra)
	return out
}
