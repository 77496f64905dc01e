package api

import (
	"context"

	"planservice/internal/school"
)

type ctxKey string

const ctxKeySchool ctxKey = "school"

func WithSchool(ctx context.Context, s *school.School) context.Context {
	return context.WithValue(ctx, ctxKeySchool, s)
}

func SchoolFromContext(ctx context.Context) *school.School {
	v := ctx.Value(ctxKeySchool)
	if v == nil {
		return nil
	}
	s, _ := v.(*school.School)
	return s
}
