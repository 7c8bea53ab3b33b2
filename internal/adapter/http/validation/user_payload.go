package validation

import (
	"strings"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

func BuildRegisterInput(req dto.RegisterRequest) (domain.RegisterInput, error) {
	errs := Errors{}
	if err := checkStruct(req, errs); err != nil {
		return domain.RegisterInput{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" && !errs.has("name") {
		errs.add("name", apierrors.MsgFieldRequired, "")
	}

	if err := errs.orNil(); err != nil {
		return domain.RegisterInput{}, err
	}
	return domain.RegisterInput{Name: name, Email: req.Email, Password: req.Password}, nil
}

func CheckLogin(req dto.LoginRequest) error {
	errs := Errors{}
	if err := checkStruct(req, errs); err != nil {
		return err
	}
	return errs.orNil()
}

// EmailTaken reports a registration conflict as a field error.
func EmailTaken() Errors {
	errs := Errors{}
	errs.add("email", apierrors.MsgFieldTaken, "")
	return errs
}
