package repoargs

type CreateOrder struct {
	ID          string
	Username    string
	PackageID   string
	PackageName string
	Price       int64
	Login       string
	Note        string
}
