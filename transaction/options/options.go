package options

// ListOptions represent options that can be used to configure a List operation
type ListOptions struct {
	// filters transactions that occurred in this range (inclusive)
	Timestamp *TimeRange
	// filters transactions that have a Kz amount in this range (inclusive)
	AmountKz *DecimalRange
	// filters transactions with this source currency
	Currency string
	// filters transactions recorded by this user
	CreatedBy string
}

func NewListOptions() *ListOptions {
	return &ListOptions{}
}

func (this *ListOptions) SetTimeRange(v *TimeRange) *ListOptions {
	this.Timestamp = v
	return this
}

func (this *ListOptions) SetAmountRange(v *DecimalRange) *ListOptions {
	this.AmountKz = v
	return this
}

func (this *ListOptions) SetCurrency(v string) *ListOptions {
	this.Currency = v
	return this
}

func (this *ListOptions) SetCreatedBy(v string) *ListOptions {
	this.CreatedBy = v
	return this
}
