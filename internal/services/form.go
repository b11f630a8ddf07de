package services

import (
	"errors"

	"github.com/cube5963/feedo-cfes/internal/cache"
	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/models"
	"github.com/cube5963/feedo-cfes/internal/schema"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SectionPayload is a section as respondents receive it: the stored row
// plus its descriptor interpreted into a typed config, so clients render
// from the config instead of re-parsing SectionDesc.
type SectionPayload struct {
	models.Section
	Config          schema.Config `json:"config"`
	ConfigDefaulted bool          `json:"configDefaulted"`
}

func toSectionPayload(section models.Section) SectionPayload {
	cfg, defaulted := schema.Parse(section.SectionType, section.SectionDesc)
	return SectionPayload{Section: section, Config: cfg, ConfigDefaulted: defaulted}
}

// PublicForm is the respondent-side view of a form.
type PublicForm struct {
	FormUUID       string           `json:"FormUUID"`
	FormName       string           `json:"FormName"`
	FormMessage    string           `json:"FormMessage"`
	SingleResponse bool             `json:"singleResponse"`
	Sections       []SectionPayload `json:"sections"`
}

type FormService struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewFormService(db *gorm.DB, c cache.Cache) *FormService {
	return &FormService{db: db, cache: c}
}

func (s *FormService) ListForms(userID uint) ([]models.Form, error) {
	var forms []models.Form
	err := s.db.Where(map[string]any{"UserID": userID, "Delete": false}).
		Order(`"CreatedAt" DESC`).
		Find(&forms).Error
	if err != nil {
		return nil, fault.NewInternalError("list forms", err)
	}
	return forms, nil
}

func (s *FormService) CreateForm(userID uint, name, message string, singleResponse bool) (*models.Form, error) {
	form := models.Form{
		FormUUID:       uuid.NewString(),
		FormName:       name,
		FormMessage:    message,
		SingleResponse: singleResponse,
		UserID:         &userID,
	}
	if err := s.db.Create(&form).Error; err != nil {
		return nil, fault.NewInternalError("create form", err)
	}
	return &form, nil
}

func (s *FormService) GetForm(formUUID string, userID uint) (*models.Form, error) {
	form, err := s.ownedForm(formUUID, userID)
	if err != nil {
		return nil, err
	}

	sections, err := loadSections(s.db, s.cache, formUUID)
	if err != nil {
		return nil, err
	}
	form.Sections = sections
	return form, nil
}

// GetPublicForm is the respondent-side fetch: no ownership check, section
// list served through the cache, every descriptor delivered pre-parsed.
func (s *FormService) GetPublicForm(formUUID string) (*PublicForm, error) {
	var form models.Form
	err := s.db.Where(map[string]any{"FormUUID": formUUID, "Delete": false}).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("form not found")
		}
		return nil, fault.NewInternalError("load form", err)
	}

	sections, err := loadSections(s.db, s.cache, formUUID)
	if err != nil {
		return nil, err
	}

	payloads := make([]SectionPayload, len(sections))
	for i, section := range sections {
		payloads[i] = toSectionPayload(section)
	}

	return &PublicForm{
		FormUUID:       form.FormUUID,
		FormName:       form.FormName,
		FormMessage:    form.FormMessage,
		SingleResponse: form.SingleResponse,
		Sections:       payloads,
	}, nil
}

func (s *FormService) UpdateForm(formUUID string, userID uint, name, message string, singleResponse bool) (*models.Form, error) {
	form, err := s.ownedForm(formUUID, userID)
	if err != nil {
		return nil, err
	}

	form.FormName = name
	form.FormMessage = message
	form.SingleResponse = singleResponse
	if err := s.db.Save(form).Error; err != nil {
		return nil, fault.NewInternalError("update form", err)
	}
	return form, nil
}

// DeleteForm soft-deletes: the form disappears from listings and
// statistics but its rows stay.
func (s *FormService) DeleteForm(formUUID string, userID uint) error {
	form, err := s.ownedForm(formUUID, userID)
	if err != nil {
		return err
	}

	form.Delete = true
	if err := s.db.Save(form).Error; err != nil {
		return fault.NewInternalError("delete form", err)
	}
	s.cache.Delete(cache.SectionsKey(formUUID))
	return nil
}

type SectionInput struct {
	SectionName string `json:"SectionName"`
	SectionType string `json:"SectionType"`
	SectionDesc string `json:"SectionDesc"`
}

func (s *FormService) CreateSection(formUUID string, userID uint, input SectionInput) (*models.Section, error) {
	if _, err := s.ownedForm(formUUID, userID); err != nil {
		return nil, err
	}

	sectionType := models.NormalizeSectionType(input.SectionType)
	if !sectionType.Known() {
		return nil, fault.Validation("unknown section type: " + input.SectionType)
	}

	var maxOrder int
	s.db.Model(&models.Section{}).
		Where(map[string]any{"FormUUID": formUUID, "Delete": false}).
		Select(`COALESCE(MAX("SectionOrder"), 0)`).
		Scan(&maxOrder)

	section := models.Section{
		SectionUUID:  uuid.NewString(),
		FormUUID:     formUUID,
		SectionName:  input.SectionName,
		SectionOrder: maxOrder + 1,
		SectionType:  sectionType,
		SectionDesc:  input.SectionDesc,
	}
	if err := s.db.Create(&section).Error; err != nil {
		return nil, fault.NewInternalError("create section", err)
	}

	s.cache.Delete(cache.SectionsKey(formUUID))
	return &section, nil
}

func (s *FormService) UpdateSection(sectionUUID string, userID uint, input SectionInput) (*models.Section, error) {
	section, err := s.ownedSection(sectionUUID, userID)
	if err != nil {
		return nil, err
	}

	if input.SectionType != "" {
		sectionType := models.NormalizeSectionType(input.SectionType)
		if !sectionType.Known() {
			return nil, fault.Validation("unknown section type: " + input.SectionType)
		}
		section.SectionType = sectionType
	}
	if input.SectionName != "" {
		section.SectionName = input.SectionName
	}
	section.SectionDesc = input.SectionDesc

	if err := s.db.Save(section).Error; err != nil {
		return nil, fault.NewInternalError("update section", err)
	}

	s.cache.Delete(cache.SectionsKey(section.FormUUID))
	return section, nil
}

func (s *FormService) DeleteSection(sectionUUID string, userID uint) error {
	section, err := s.ownedSection(sectionUUID, userID)
	if err != nil {
		return err
	}

	section.Delete = true
	if err := s.db.Save(section).Error; err != nil {
		return fault.NewInternalError("delete section", err)
	}

	s.cache.Delete(cache.SectionsKey(section.FormUUID))
	return nil
}

type SectionOrder struct {
	SectionUUID  string `json:"SectionUUID"`
	SectionOrder int    `json:"SectionOrder"`
}

func (s *FormService) ReorderSections(formUUID string, userID uint, order []SectionOrder) error {
	if _, err := s.ownedForm(formUUID, userID); err != nil {
		return err
	}

	tx := s.db.Begin()
	for _, o := range order {
		err := tx.Model(&models.Section{}).
			Where(map[string]any{"SectionUUID": o.SectionUUID, "FormUUID": formUUID}).
			Update("SectionOrder", o.SectionOrder).Error
		if err != nil {
			tx.Rollback()
			return fault.NewInternalError("reorder sections", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fault.NewInternalError("reorder sections", err)
	}

	s.cache.Delete(cache.SectionsKey(formUUID))
	return nil
}

func (s *FormService) ownedForm(formUUID string, userID uint) (*models.Form, error) {
	var form models.Form
	err := s.db.Where(map[string]any{"FormUUID": formUUID, "UserID": userID, "Delete": false}).
		First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("form not found")
		}
		return nil, fault.NewInternalError("load form", err)
	}
	return &form, nil
}

func (s *FormService) ownedSection(sectionUUID string, userID uint) (*models.Section, error) {
	var section models.Section
	err := s.db.Where(map[string]any{"SectionUUID": sectionUUID, "Delete": false}).
		First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("section not found")
		}
		return nil, fault.NewInternalError("load section", err)
	}

	if _, err := s.ownedForm(section.FormUUID, userID); err != nil {
		return nil, err
	}
	return &section, nil
}
