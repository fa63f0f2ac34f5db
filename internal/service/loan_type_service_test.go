package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/testutil"
)

func validLoanType() domain.LoanType {
	return domain.LoanType{
		Name:                "Home",
		InterestRate:        decimal.RequireFromString("8.5"),
		MaxLoansPerCustomer: 2,
		MaxTenureYears:      30,
		MaxLoanAmount:       decimal.NewFromInt(10000000),
		PenaltyRatePercent:  dec("2"),
	}
}

func setupLoanTypeService() (*LoanTypeService, *testutil.MockAdminLoanGateway, *testutil.MockEventPublisher) {
	gateway := testutil.NewMockAdminLoanGateway()
	existing := validLoanType()
	existing.ID = 1
	gateway.LoanTypes[1] = &existing

	publisher := testutil.NewMockEventPublisher()
	svc := NewLoanTypeService(gateway)
	svc.SetEventPublisher(publisher)
	return svc, gateway, publisher
}

func TestListLoanTypes(t *testing.T) {
	svc, _, _ := setupLoanTypeService()

	types, err := svc.ListLoanTypes(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Home", types[0].Name)
}

func TestUpdateLoanType_Success(t *testing.T) {
	svc, gateway, publisher := setupLoanTypeService()

	input := validLoanType()
	input.Name = "  Home Plus "
	input.InterestRate = decimal.RequireFromString("9.25")

	updated, err := svc.UpdateLoanType(context.Background(), admin, 1, input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Home Plus", updated.Name)
	assert.Equal(t, "9.25", gateway.LoanTypes[1].InterestRate.String())
	assert.Len(t, publisher.Events, 1)
}

func TestUpdateLoanType_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(lt *domain.LoanType)
		err    error
	}{
		{"empty name", func(lt *domain.LoanType) { lt.Name = " " }, domain.ErrLoanTypeNameEmpty},
		{"rate too low", func(lt *domain.LoanType) { lt.InterestRate = decimal.RequireFromString("6.4") }, domain.ErrLoanTypeInterestInvalid},
		{"rate too high", func(lt *domain.LoanType) { lt.InterestRate = decimal.RequireFromString("15.01") }, domain.ErrLoanTypeInterestInvalid},
		{"too many loans", func(lt *domain.LoanType) { lt.MaxLoansPerCustomer = 4 }, domain.ErrLoanTypeMaxLoansInvalid},
		{"tenure too long", func(lt *domain.LoanType) { lt.MaxTenureYears = 31 }, domain.ErrLoanTypeTenureInvalid},
		{"amount too small", func(lt *domain.LoanType) { lt.MaxLoanAmount = decimal.NewFromInt(19999) }, domain.ErrLoanTypeAmountInvalid},
		{"negative penalty", func(lt *domain.LoanType) { lt.PenaltyRatePercent = dec("-1") }, domain.ErrLoanTypePenaltyInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, gateway, _ := setupLoanTypeService()
			input := validLoanType()
			tt.mutate(&input)

			_, err := svc.UpdateLoanType(context.Background(), admin, 1, input)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, "Home", gateway.LoanTypes[1].Name, "invalid input must not reach the loan service")
		})
	}
}

func TestUpdateLoanType_Unknown(t *testing.T) {
	svc, _, _ := setupLoanTypeService()

	_, err := svc.UpdateLoanType(context.Background(), admin, 9, validLoanType())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
