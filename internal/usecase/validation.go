package usecase

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// spaceClass matches ASCII whitespace plus Unicode separators such as
// U+00A0, which `\s` alone does not cover.
const spaceClass = `\s\v\p{Z}\x{FEFF}`

var (
	alphaSpaceRe  = regexp.MustCompile(`^[a-zA-Z` + spaceClass + `]*$`)
	indianPhoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailShapeRe  = regexp.MustCompile(`^[^@` + spaceClass + `]+@[^@` + spaceClass + `]+\.[^@` + spaceClass + `]+$`)
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"alphaspace": func(fl validator.FieldLevel) bool {
			return alphaSpaceRe.MatchString(fl.Field().String())
		},
		"inmobile": func(fl validator.FieldLevel) bool {
			return indianPhoneRe.MatchString(fl.Field().String())
		},
		"leademail": func(fl validator.FieldLevel) bool {
			return emailShapeRe.MatchString(fl.Field().String())
		},
		"area": func(fl validator.FieldLevel) bool {
			return entity.IsKnownArea(fl.Field().String())
		},
		"agegroup":     oneOf(entity.AgeGroups),
		"learninggoal": oneOf(entity.LearningGoals),
		"tutorgender":  oneOf(entity.TutorGenders),
		"sessiontype":  oneOf(entity.SessionTypes),
		"budget":       oneOf(entity.BudgetRanges),
		"experience":   oneOf(entity.Experiences),
		"leadstatus": func(fl validator.FieldLevel) bool {
			return entity.LeadStatus(fl.Field().String()).Valid()
		},
		"subjects": func(fl validator.FieldLevel) bool {
			f := fl.Field()
			if f.Kind() != reflect.Slice {
				return false
			}
			for i := 0; i < f.Len(); i++ {
				if !entity.IsKnownSubject(f.Index(i).String()) {
					return false
				}
			}
			return true
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic("usecase: register validation " + tag + ": " + err.Error())
		}
	}
	return v
}

// leadFields holds the cleaned values the lead rules run against.
// Field order is the order failures are reported in.
type leadFields struct {
	StudentName  string   `json:"studentName" validate:"required,min=2,max=50,alphaspace"`
	ParentName   string   `json:"parentName" validate:"omitempty,max=50,alphaspace"`
	Phone        string   `json:"phone" validate:"required,inmobile"`
	Email        string   `json:"email" validate:"required,leademail"`
	Age          string   `json:"age" validate:"omitempty,agegroup"`
	Subjects     []string `json:"subjects" validate:"required,min=1,subjects"`
	LearningGoal string   `json:"learningGoal" validate:"required,learninggoal"`
	Area         string   `json:"area" validate:"required,area"`
	TutorGender  string   `json:"tutorGender" validate:"omitempty,tutorgender"`
	SessionType  string   `json:"sessionType" validate:"omitempty,sessiontype"`
	Budget       string   `json:"budget" validate:"omitempty,budget"`
	Experience   string   `json:"experience" validate:"omitempty,experience"`
	Message      string   `json:"message" validate:"omitempty,max=500"`
}

type quickCallFields struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Phone   string `json:"phone" validate:"required,inmobile"`
	Subject string `json:"subject" validate:"omitempty,max=100"`
}

type statusFields struct {
	Status string `json:"status" validate:"required,leadstatus"`
}

// messages maps field -> failed tag -> user-facing text. The "" entry is
// the fallback for the field.
var messages = map[string]map[string]string{
	"studentName": {
		"required":   "Student name is required",
		"alphaspace": "Student name can only contain letters and spaces",
		"":           "Student name must be between 2-50 characters",
	},
	"parentName": {
		"alphaspace": "Parent name can only contain letters and spaces",
		"":           "Parent name must be less than 50 characters",
	},
	"phone": {
		"required": "Phone number is required",
		"":         "Please enter a valid 10-digit phone number",
	},
	"email": {
		"required": "Email address is required",
		"":         "Please enter a valid email address",
	},
	"age": {"": "Please select a valid age group"},
	"subjects": {
		"subjects": "Invalid subject selection",
		"":         "Please select at least one tech subject",
	},
	"learningGoal": {
		"required": "Learning goal is required",
		"":         "Please select a valid learning goal",
	},
	"area": {
		"required": "Area is required",
		"":         "Please select a valid area in Hyderabad",
	},
	"tutorGender": {"": "Please select a valid tutor preference"},
	"sessionType": {"": "Please select a valid session type"},
	"budget":      {"": "Please select a valid budget range"},
	"experience":  {"": "Please select a valid experience level"},
	"message":     {"": "Message must be less than 500 characters"},
	"name":        {"": "Name is required"},
	"subject":     {"": "Subject must be less than 100 characters"},
	"status":      {"": "Invalid status"},
}

// ValidateLead checks a submitted contact form. It returns nil when the
// form is valid, otherwise one error per failing field in form order.
func ValidateLead(raw RawLead) []ValidationError {
	return run(leadFields{
		StudentName:  strings.TrimSpace(raw.StudentName),
		ParentName:   strings.TrimSpace(raw.ParentName),
		Phone:        stripWhitespace(raw.Phone),
		Email:        strings.TrimSpace(raw.Email),
		Age:          raw.Age,
		Subjects:     submittedSubjects(raw.Subjects),
		LearningGoal: raw.LearningGoal,
		Area:         raw.Area,
		TutorGender:  raw.TutorGender,
		SessionType:  raw.SessionType,
		Budget:       raw.Budget,
		Experience:   raw.Experience,
		Message:      strings.TrimSpace(raw.Message),
	})
}

func ValidateQuickCall(input QuickCallInput) []ValidationError {
	violations := run(quickCallFields{
		Name:    strings.TrimSpace(input.Name),
		Phone:   stripWhitespace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
	})
	for i := range violations {
		if violations[i].Field == "phone" {
			violations[i].Message = "Valid phone number required"
		}
	}
	return violations
}

func ValidateStatus(input UpdateStatusInput) []ValidationError {
	return run(statusFields{Status: input.Status})
}

// JoinValidationMessages renders violations as one sentence list for the
// redirect flow.
func JoinValidationMessages(violations []ValidationError) string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, ". ")
}

func run(fields any) []ValidationError {
	err := validate.Struct(fields)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Field: "_", Message: "Invalid request"}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return out
}

func messageFor(field, tag string) string {
	byTag, ok := messages[field]
	if !ok {
		return field + " is invalid"
	}
	if msg, ok := byTag[tag]; ok {
		return msg
	}
	return byTag[""]
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// stripWhitespace removes every Unicode space, including the no-break
// spaces phone keyboards insert, and the byte order mark.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\uFEFF' {
			return -1
		}
		return r
	}, s)
}

// submittedSubjects returns the selections exactly as sent so the whitelist
// sees padded or blank entries. A lone empty value counts as no selection.
func submittedSubjects(values []string) []string {
	if len(values) == 0 || (len(values) == 1 && values[0] == "") {
		return nil
	}
	return slices.Clone(values)
}
