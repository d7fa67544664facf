package repoargs

type RepositoryName string

const (
	UserRepoName    RepositoryName = "user"
	DepositRepoName RepositoryName = "deposit"
	OrderRepoName   RepositoryName = "order"
)
