package domain

// ImportReport describes the outcome of importing a legacy transactions file.
type ImportReport struct {
	Username    string
	UserCreated bool
	Found       int // Records present in the file
	Imported    int
	Skipped     int
	TotalOwned  int // Transactions owned by the user after the import
}
