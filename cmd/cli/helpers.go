package main

import (
	"librero/cmd/cli/render"
	"librero/internal/services"
)

func renderRecommendation(rec services.Recommendation, read []string) render.RecommendationView {
	return render.RecommendationView{
		Message: services.FormatMessage(rec),
		Read:    append([]string(nil), read...),
	}
}
