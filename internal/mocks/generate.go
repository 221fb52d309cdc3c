package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/document --output domain/document --outpkg documentmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/analytics --output domain/analytics --outpkg analyticsmock --filename repository_mock.go
