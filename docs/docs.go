// Package docs встраивает OpenAPI-описание API расписаний для Swagger UI.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
