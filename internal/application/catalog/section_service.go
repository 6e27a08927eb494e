package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// SectionService handles admin section operations.
type SectionService struct {
	repo   catalog.Repository
	logger *zap.Logger
}

// NewSectionService creates a SectionService.
func NewSectionService(repo catalog.Repository, logger *zap.Logger) *SectionService {
	return &SectionService{repo: repo, logger: logger}
}

// Create inserts a new section. Codes are unique.
func (s *SectionService) Create(ctx context.Context, req CreateSectionRequest) (*SectionResponse, error) {
	sections, err := s.repo.LoadSections(ctx)
	if err != nil {
		return nil, err
	}
	for _, sec := range sections {
		if sec.Code == req.Code {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists,
				fmt.Sprintf("section code %q already exists", req.Code))
		}
	}

	id, err := s.repo.NextSectionID(ctx)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	section := catalog.Section{
		ID:     id,
		Name:   req.Name,
		Code:   req.Code,
		Active: active,
	}
	if err := section.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveSections(ctx, append(sections, section)); err != nil {
		return nil, err
	}

	s.logger.Info("catalog section created",
		zap.Int("section_id", id),
		zap.String("code", section.Code),
	)
	resp := ToSectionResponse(section)
	return &resp, nil
}

// Update edits a section's name and active flag. The code is stable
// and cannot change: items reference it.
func (s *SectionService) Update(ctx context.Context, code string, req UpdateSectionRequest) (*SectionResponse, error) {
	sections, err := s.repo.LoadSections(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		if sections[i].Code != code {
			continue
		}
		if req.Name != "" {
			sections[i].Name = req.Name
		}
		if req.Active != nil {
			sections[i].Active = *req.Active
		}
		if err := sections[i].Validate(); err != nil {
			return nil, err
		}
		if err := s.repo.SaveSections(ctx, sections); err != nil {
			return nil, err
		}
		resp := ToSectionResponse(sections[i])
		return &resp, nil
	}
	return nil, shared.NewNotFoundError(fmt.Sprintf("section %q does not exist", code))
}

// Delete removes a section; refused while active items reference it.
func (s *SectionService) Delete(ctx context.Context, code string) error {
	if err := s.repo.DeleteSection(ctx, code); err != nil {
		return err
	}
	s.logger.Info("catalog section deleted", zap.String("code", code))
	return nil
}

// List returns all sections as stored. Live product counts come from
// the storefront projection, not from here.
func (s *SectionService) List(ctx context.Context) ([]SectionResponse, error) {
	sections, err := s.repo.LoadSections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SectionResponse, 0, len(sections))
	for _, sec := range sections {
		out = append(out, ToSectionResponse(sec))
	}
	return out, nil
}
