//go:generate mockgen -source=../broker.go             -destination=./mock_broker.go             -package=mocks
//go:generate mockgen -source=../stream_processor.go   -destination=./mock_stream_processor.go   -package=mocks
//go:generate mockgen -source=../host.go               -destination=./mock_host.go               -package=mocks
//go:generate mockgen -source=../consumer_group.go     -destination=./mock_consumer_group.go     -package=mocks
//go:generate mockgen -source=../event_store.go        -destination=./mock_event_store.go        -package=mocks
//go:generate mockgen -source=../event_validator.go    -destination=./mock_event_validator.go    -package=mocks
//go:generate mockgen -source=../event_read_service.go -destination=./mock_event_read_service.go -package=mocks

package mocks
