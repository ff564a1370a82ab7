package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LeagueProvider --dir ../usecase --output usecase --outpkg usecasemock --filename league_provider_mock.go
