package health

type Service interface {
	IsHealthy() bool
}

type Impl struct {
	isDatabaseConnected func() bool
}
