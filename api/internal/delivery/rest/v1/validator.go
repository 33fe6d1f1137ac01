package v1

import (
	"fmt"
	"net/http"
	"reflect"

	"payout/api/internal/domain"
	"payout/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"
	"github.com/xssnick/tonutils-go/address"
)

// amount - decimal string, positive
// cryptocurrency - one of eth ton sol
// wallet address - checked against the chain's own parser

type NewWithdrawalData struct {
	Cryptocurrency string `json:"cryptocurrency" validate:"required,oneof=eth ton sol"`
	Amount         string `json:"amount" validate:"required"`
	WalletAddress  string `json:"wallet_address" validate:"required,wallet_address"`

	AmountDecimal decimal.Decimal `json:"-"` // used after validation
}

// checks the validity of the withdrawal request body
// returns false if there is an error
func filterWithdrawalQuery(c *gin.Context) (*NewWithdrawalData, bool) {

	var data NewWithdrawalData
	err := c.ShouldBindJSON(&data)
	if err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return nil, false
	}

	v := validator.New()

	v.RegisterValidation("wallet_address", validateWalletAddress)
	err = v.Struct(data)
	if err != nil {
		validationErrs, err := utils.SafeCast[validator.ValidationErrors](err)
		if err != nil {
			fmt.Println(err)
			responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
			return nil, false
		}
		if validationErrs == nil {
			responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
			return nil, false
		}

		validationErr := validationErrs[0]
		responseErr(c, http.StatusBadRequest, formatValidationErr(data, validationErr), "")
		return nil, false
	}

	amountDecimal, err := decimal.NewFromString(data.Amount)
	if err != nil || !amountDecimal.IsPositive() {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "amount must be a positive decimal string"), "")
		return nil, false
	}

	data.AmountDecimal = amountDecimal

	return &data, true

}

// the chain's own parser is the judge of a destination address
func validateWalletAddress(fl validator.FieldLevel) bool {

	obj := fl.Parent()
	addr := fl.Field().String()

	cryptoField := obj.FieldByName("Cryptocurrency")
	if !cryptoField.IsValid() {
		fmt.Println("Invalid field by name: Cryptocurrency")
		return false
	}

	switch domain.StrToCrypto(cryptoField.String()) {
	case domain.CRYPTO_ETH:
		return common.IsHexAddress(addr)
	case domain.CRYPTO_SOL:
		_, err := solana.PublicKeyFromBase58(addr)
		return err == nil
	case domain.CRYPTO_TON:
		_, err := address.ParseAddr(addr)
		return err == nil
	}

	return false
}

func formatValidationErr(data any, err validator.FieldError) string {
	jsonTag := getJSONTag(data, err.Field())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", jsonTag)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of '%s'", jsonTag, err.Param())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s characters long", jsonTag, err.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters long", jsonTag, err.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", jsonTag, err.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", jsonTag, err.Param())
	//  custom tags
	case "wallet_address":
		return domain.ErrMsgInvalidAddress

	default:
		return fmt.Sprintf("invalid field '%s'", jsonTag)
	}

}

func getJSONTag(structType any, fieldName string) string {
	typ := reflect.TypeOf(structType)
	field, _ := typ.FieldByName(fieldName)
	tag := field.Tag.Get("json")
	if tag == "" {
		return fieldName
	}
	return tag
}
