package book_appointment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// nextConfirmationNumber выдает следующий номер подтверждения вида
// APT-<год>-<номер> с шестизначным суффиксом. Последовательность своя
// для каждого года и начинается с 1000.
// Вызывается внутри сериализуемой транзакции: уникальный индекс на номере
// ловит гонку двух одновременных бронирований
func (uc *UseCase) nextConfirmationNumber(ctx context.Context, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", domain.ConfirmationPrefix, now.Year())

	maxNumber, err := uc.appointmentRepo.GetMaxConfirmationNumber(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("%w: get max confirmation number: %v", ErrInternal, err)
	}

	next := domain.ConfirmationSeqStart
	if maxNumber != nil {
		suffix := strings.TrimPrefix(*maxNumber, prefix)
		current, err := strconv.Atoi(suffix)
		if err != nil {
			return "", fmt.Errorf("%w: malformed confirmation number %q", ErrInternal, *maxNumber)
		}
		next = current + 1
	}

	return fmt.Sprintf("%s%0*d", prefix, domain.ConfirmationSeqDigits, next), nil
}
