// Package authsvc - Test kiểm tra vòng trong chuỗi cấp trên.
package authsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDetectSupervisorCycle_NoCycle(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	// chuỗi thẳng: c -> b -> a -> (gốc)
	parentOf := map[string]primitive.ObjectID{
		c.Hex(): b,
		b.Hex(): a,
	}

	if DetectSupervisorCycle(b, a, parentOf) {
		t.Error("gán b làm cấp trên của a trong chuỗi thẳng không tạo vòng")
	}
	if DetectSupervisorCycle(primitive.NewObjectID(), c, parentOf) {
		t.Error("user mới gắn vào cuối chuỗi không tạo vòng")
	}
}

func TestDetectSupervisorCycle_DirectCycle(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	// b đang có cấp trên là a; gán a dưới b sẽ tạo vòng a -> b -> a
	parentOf := map[string]primitive.ObjectID{
		b.Hex(): a,
	}
	if !DetectSupervisorCycle(a, b, parentOf) {
		t.Error("phải phát hiện vòng trực tiếp a -> b -> a")
	}
}

func TestDetectSupervisorCycle_BrokenChain(t *testing.T) {
	// Chuỗi đứt giữa chừng (cấp trên đã bị xóa khỏi danh bạ): không có vòng.
	// Đây là dạng map mà fetchSupervisorChain dựng khi FindOneById thất bại
	// giữa đường đi.
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	parentOf := map[string]primitive.ObjectID{
		c.Hex(): b,
		// b trỏ tới node không còn tồn tại: không có entry cho b
	}
	if DetectSupervisorCycle(a, c, parentOf) {
		t.Error("chuỗi đứt giữa chừng không thể có vòng")
	}
}

func TestDetectSupervisorCycle_SelfSupervision(t *testing.T) {
	a := primitive.NewObjectID()
	if !DetectSupervisorCycle(a, a, nil) {
		t.Error("tự làm cấp trên của chính mình là vòng")
	}
}

func TestDetectSupervisorCycle_LongChain(t *testing.T) {
	// vòng dài: a <- b <- c <- d, gán d làm cấp trên của a
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	d := primitive.NewObjectID()
	parentOf := map[string]primitive.ObjectID{
		b.Hex(): a,
		c.Hex(): b,
		d.Hex(): c,
	}
	if !DetectSupervisorCycle(a, d, parentOf) {
		t.Error("phải phát hiện vòng qua chuỗi dài")
	}
}

func TestDetectSupervisorCycle_DepthCap(t *testing.T) {
	// Chuỗi vượt quá độ sâu cho phép coi như có vòng
	user := primitive.NewObjectID()
	parentOf := map[string]primitive.ObjectID{}
	head := primitive.NewObjectID()
	current := head
	for i := 0; i < maxChainDepth+5; i++ {
		next := primitive.NewObjectID()
		parentOf[current.Hex()] = next
		current = next
	}
	if !DetectSupervisorCycle(user, head, parentOf) {
		t.Error("chuỗi quá sâu phải bị coi là vòng")
	}
}

func TestDetectSupervisorCycle_ZeroSupervisor(t *testing.T) {
	if DetectSupervisorCycle(primitive.NewObjectID(), primitive.NilObjectID, nil) {
		t.Error("không có cấp trên thì không có vòng")
	}
}
