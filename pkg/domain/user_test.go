package domain

import (
	"errors"
	"testing"
)

func TestParseUserStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    UserStatus
		wantErr bool
	}{
		{"active", "active", UserStatusActive, false},
		{"inactive", "inactive", UserStatusInactive, false},
		{"mixed case", "Active", UserStatusActive, false},
		{"padded", "  INACTIVE  ", UserStatusInactive, false},
		{"unknown", "dormant", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUserStatus(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Fatalf("err = %v, want ErrInvalidStatus", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseUserFunction(t *testing.T) {
	tests := []struct {
		input   string
		want    UserFunction
		wantErr bool
	}{
		{"manager", FunctionManager, false},
		{"consumer", FunctionConsumer, false},
		{"agent", FunctionAgent, false},
		{"Underwriter", FunctionUnderwriter, false},
		{"pilot", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUserFunction(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFunction) {
					t.Fatalf("err = %v, want ErrInvalidFunction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUser_HasFunction(t *testing.T) {
	u := &User{Functions: []UserFunction{FunctionAgent, FunctionManager}}

	if !u.HasFunction(FunctionAgent) {
		t.Error("HasFunction(agent) = false, want true")
	}
	if u.HasFunction(FunctionUnderwriter) {
		t.Error("HasFunction(underwriter) = true, want false")
	}
}

func TestParseCompanyStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    CompanyStatus
		wantErr bool
	}{
		{"active", CompanyStatusActive, false},
		{"Deactivated", CompanyStatusDeactivated, false},
		{"inactive", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCompanyStatus(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Fatalf("err = %v, want ErrInvalidStatus", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompany_IsDeactivated(t *testing.T) {
	if (&Company{Status: CompanyStatusActive}).IsDeactivated() {
		t.Error("active company reported as deactivated")
	}
	if !(&Company{Status: CompanyStatusDeactivated}).IsDeactivated() {
		t.Error("deactivated company not reported as deactivated")
	}
}

func TestErrorClassification(t *testing.T) {
	if !IsNotFound(ErrCompanyNotFound) || !IsNotFound(ErrUserNotFound) {
		t.Error("not-found sentinels should classify as not found")
	}
	if !IsPrecondition(ErrCompanyDeactivated) || !IsPrecondition(ErrUsernameAlreadyExists) {
		t.Error("business-rule sentinels should classify as preconditions")
	}
	if !IsValidation(ErrInvalidName) || !IsValidation(ErrInvalidReactivationMode) {
		t.Error("validation sentinels should classify as validation")
	}
	if IsNotFound(ErrInvalidName) || IsPrecondition(ErrCompanyNotFound) || IsValidation(ErrCompanyDeactivated) {
		t.Error("sentinels should not cross classification groups")
	}
	other := errors.New("boom")
	if IsNotFound(other) || IsPrecondition(other) || IsValidation(other) {
		t.Error("unclassified errors should not match any group")
	}
}
