package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type profile struct {
	RealName string `validate:"required,realname"`
	Email    string `validate:"required,email,orgemail"`
}

func TestCustomValidator(t *testing.T) {
	t.Parallel()
	cv := NewCustomValidator(WithOrgDomains("GEHealthcare.com"))

	tests := []struct {
		name    string
		in      profile
		wantErr bool
	}{
		{name: "ok", in: profile{RealName: "홍길동", Email: "gildong@gehealthcare.com"}},
		{name: "latin name", in: profile{RealName: "John", Email: "john@gehealthcare.com"}, wantErr: true},
		{name: "too long", in: profile{RealName: "가나다라마", Email: "a@gehealthcare.com"}, wantErr: true},
		{name: "other domain", in: profile{RealName: "홍길동", Email: "gildong@gmail.com"}, wantErr: true},
		{name: "not an email", in: profile{RealName: "홍길동", Email: "gildong"}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := cv.Validate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCustomValidator_AnyDomain(t *testing.T) {
	t.Parallel()
	require.NoError(t, NewCustomValidator().Validate(profile{RealName: "김철수", Email: "c@gmail.com"}))
}
